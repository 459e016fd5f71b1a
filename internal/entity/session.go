package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/caro-client/internal/apperror"
)

type Move struct {
	Index  int  `json:"index"`
	Player Cell `json:"player"`
}

// Session is one game from configuration to outcome. It owns its board;
// callers only ever see copies through Snapshot and Cells.
type Session struct {
	id         string
	rules      Rules
	board      *Board
	phase      Phase
	outcome    Outcome
	moves      []Move
	startedAt  time.Time
	finishedAt time.Time
}

type SessionSnapshot struct {
	ID         string    `json:"id"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	Cells      []Cell    `json:"cells"`
	Rules      Rules     `json:"rules"`
	Phase      Phase     `json:"phase"`
	Outcome    Outcome   `json:"outcome,omitempty"`
	Moves      []Move    `json:"moves"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Position maps a row-major index to its row and column.
func (s SessionSnapshot) Position(index int) (int, int) {
	return index / s.Cols, index % s.Cols
}

func (s SessionSnapshot) Index(row, col int) int {
	return row*s.Cols + col
}

func NewSession(id string, settings Settings, now time.Time) (*Session, error) {
	board, err := NewBoard(settings.Rows, settings.Cols)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	phase := PhaseAwaitingHuman
	if settings.FirstMove == FirstMoveAI {
		phase = PhaseAwaitingAI
	}

	return &Session{
		id:        id,
		rules:     settings.Rules,
		board:     board,
		phase:     phase,
		startedAt: now,
	}, nil
}

func (that *Session) ID() string { return that.id }

func (that *Session) Rules() Rules { return that.rules }

func (that *Session) Phase() Phase { return that.phase }

func (that *Session) Outcome() Outcome { return that.outcome }

func (that *Session) Rows() int { return that.board.Rows() }

func (that *Session) Cols() int { return that.board.Cols() }

func (that *Session) Cells() []Cell { return that.board.Cells() }

func (that *Session) IsEmpty(index int) bool { return that.board.IsEmpty(index) }

func (that *Session) IsFinished() bool { return that.phase == PhaseFinished }

// CanPlayHuman reports whether PlayHuman(index) would succeed.
func (that *Session) CanPlayHuman(index int) bool {
	return that.phase == PhaseAwaitingHuman && that.board.IsEmpty(index)
}

// PlayHuman places the human mark and hands the turn to the AI.
func (that *Session) PlayHuman(index int) error {
	if err := that.confirmTurn(PhaseAwaitingHuman); err != nil {
		return err
	}

	if err := that.place(index, CellHuman); err != nil {
		return err
	}

	that.phase = PhaseAwaitingAI

	return nil
}

// PlayOpening puts the AI's first mark on the center cell without asking the
// engine. It is only legal on an empty board while the AI is to move.
func (that *Session) PlayOpening() (int, error) {
	if err := that.confirmTurn(PhaseAwaitingAI); err != nil {
		return 0, err
	}

	if that.board.Filled() != 0 {
		return 0, fmt.Errorf("%w: opening on a non-empty board", apperror.ErrNotYourTurn)
	}

	center := that.board.Center()
	if err := that.place(center, CellAI); err != nil {
		return 0, err
	}

	that.phase = PhaseAwaitingHuman

	return center, nil
}

// ApplyBotReply applies one engine reply. A move, if present, must land on an
// empty cell inside the board, otherwise nothing changes. The outcome is
// honoured independently of the move.
func (that *Session) ApplyBotReply(move *int, outcome Outcome, now time.Time) error {
	if err := that.confirmTurn(PhaseAwaitingAI); err != nil {
		return err
	}

	if move != nil {
		if err := that.place(*move, CellAI); err != nil {
			if errors.Is(err, apperror.ErrInvalidCell) || errors.Is(err, apperror.ErrCellOccupied) {
				return fmt.Errorf("%w: %w", apperror.ErrServerTrustViolation, err)
			}
			return err
		}
	}

	if outcome.IsTerminal() {
		that.phase = PhaseFinished
		that.outcome = outcome
		that.finishedAt = now

		return nil
	}

	that.phase = PhaseAwaitingHuman

	return nil
}

func (that *Session) Snapshot() SessionSnapshot {
	moves := make([]Move, len(that.moves))
	copy(moves, that.moves)

	return SessionSnapshot{
		ID:         that.id,
		Rows:       that.board.Rows(),
		Cols:       that.board.Cols(),
		Cells:      that.board.Cells(),
		Rules:      that.rules,
		Phase:      that.phase,
		Outcome:    that.outcome,
		Moves:      moves,
		StartedAt:  that.startedAt,
		FinishedAt: that.finishedAt,
	}
}

func (that *Session) place(index int, player Cell) error {
	if err := that.board.Place(index, player); err != nil {
		return err
	}

	that.moves = append(that.moves, Move{Index: index, Player: player})

	return nil
}

func (that *Session) confirmTurn(want Phase) error {
	switch {
	case that.phase == want:
		return nil
	case that.phase == PhaseFinished:
		return apperror.ErrGameFinished
	default:
		return apperror.ErrNotYourTurn
	}
}
