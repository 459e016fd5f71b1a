package service

import (
	"fmt"

	"github.com/rocketscienceinc/caro-client/internal/entity"
)

// Status is the one-line message shown under the board.
type Status struct {
	Text  string `json:"text"`
	Error bool   `json:"error"`
	Busy  bool   `json:"busy"`
}

const (
	textYourTurn       = "Your turn (X)"
	textOpening        = "AI is making the opening move..."
	textThinking       = "AI (level %d) is thinking..."
	textTransportError = "Connection error! Press r to retry."
	textIllegalReply   = "Engine sent an illegal move. Press r to retry."
	textHumanWin       = "You win!"
	textAIWin          = "AI wins!"
	textDraw           = "Draw!"
)

func statusYourTurn() Status {
	return Status{Text: textYourTurn}
}

func statusOpening() Status {
	return Status{Text: textOpening, Busy: true}
}

func statusThinking(rules entity.Rules) Status {
	return Status{Text: fmt.Sprintf(textThinking, rules.Difficulty), Busy: true}
}

func statusTransportError() Status {
	return Status{Text: textTransportError, Error: true}
}

func statusIllegalReply() Status {
	return Status{Text: textIllegalReply, Error: true}
}

func statusOutcome(outcome entity.Outcome) Status {
	switch outcome {
	case entity.OutcomeHumanWin:
		return Status{Text: textHumanWin}
	case entity.OutcomeAIWin:
		return Status{Text: textAIWin}
	default:
		return Status{Text: textDraw}
	}
}

// statusFor - the resting status of a session that has no request in flight.
func statusFor(snapshot entity.SessionSnapshot) Status {
	switch snapshot.Phase {
	case entity.PhaseFinished:
		return statusOutcome(snapshot.Outcome)
	case entity.PhaseAwaitingAI:
		return statusThinking(snapshot.Rules)
	default:
		return statusYourTurn()
	}
}
