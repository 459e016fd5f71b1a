package engine

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/rocketscienceinc/caro-client/internal/entity"
)

type MoveRequest struct {
	Board     []entity.Cell `json:"board"`
	Rows      int           `json:"rows"`
	Cols      int           `json:"cols"`
	Depth     int           `json:"depth"`
	WinStreak int           `json:"win_streak"`
}

type MoveResponse struct {
	Move   *int   `json:"move"`
	Winner Winner `json:"winner"`
	Error  string `json:"error,omitempty"`
}

// Winner is the engine's outcome tag. The engine sends "x" or 1 for the
// human, "o" or 2 for the AI and "draw" when the board is full; null, "",
// 0 and false all mean the game goes on. Any other value, "X" included, is
// a draw.
type Winner struct {
	Outcome entity.Outcome
}

func (that *Winner) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)

	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")), bytes.Equal(raw, []byte("false")):
		that.Outcome = entity.OutcomeNone
		return nil
	case bytes.Equal(raw, []byte("true")):
		that.Outcome = entity.OutcomeDraw
		return nil
	case raw[0] == '"':
		var tag string
		if err := json.Unmarshal(raw, &tag); err != nil {
			return err
		}
		that.Outcome = outcomeFromTag(tag)
		return nil
	default:
		var code json.Number
		if err := json.Unmarshal(raw, &code); err != nil {
			return err
		}
		that.Outcome = outcomeFromCode(code)
		return nil
	}
}

func (that Winner) MarshalJSON() ([]byte, error) {
	switch that.Outcome {
	case entity.OutcomeHumanWin:
		return []byte(`"x"`), nil
	case entity.OutcomeAIWin:
		return []byte(`"o"`), nil
	case entity.OutcomeDraw:
		return []byte(`"draw"`), nil
	default:
		return []byte("null"), nil
	}
}

// outcomeFromTag matches "x" and "o" exactly; numeric strings are compared
// loosely, so " 1" still names the human.
func outcomeFromTag(tag string) entity.Outcome {
	switch tag {
	case "":
		return entity.OutcomeNone
	case "x":
		return entity.OutcomeHumanWin
	case "o":
		return entity.OutcomeAIWin
	}

	switch strings.TrimSpace(tag) {
	case "1":
		return entity.OutcomeHumanWin
	case "2":
		return entity.OutcomeAIWin
	default:
		return entity.OutcomeDraw
	}
}

func outcomeFromCode(code json.Number) entity.Outcome {
	switch code.String() {
	case "0", "0.0":
		return entity.OutcomeNone
	case "1", "1.0":
		return entity.OutcomeHumanWin
	case "2", "2.0":
		return entity.OutcomeAIWin
	default:
		return entity.OutcomeDraw
	}
}
