package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/caro-client/internal/entity"
	"github.com/rocketscienceinc/caro-client/internal/transport/engine"
)

// BotReply is one interpreted engine answer: an optional move and an
// optional outcome, independent of each other.
type BotReply struct {
	Move    *int
	Outcome entity.Outcome
}

type BotService interface {
	MakeTurn(ctx context.Context, snapshot entity.SessionSnapshot) (BotReply, error)
}

type engineClient interface {
	Move(ctx context.Context, request engine.MoveRequest) (*engine.MoveResponse, error)
}

type botService struct {
	engine engineClient
}

func NewBotService(engine engineClient) BotService {
	return &botService{
		engine: engine,
	}
}

// MakeTurn - asks the engine to answer the position in snapshot. The reply is
// not checked against the board here; Session.ApplyBotReply does that.
func (that *botService) MakeTurn(ctx context.Context, snapshot entity.SessionSnapshot) (BotReply, error) {
	response, err := that.engine.Move(ctx, engine.MoveRequest{
		Board:     snapshot.Cells,
		Rows:      snapshot.Rows,
		Cols:      snapshot.Cols,
		Depth:     snapshot.Rules.Difficulty,
		WinStreak: snapshot.Rules.WinStreak,
	})
	if err != nil {
		return BotReply{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return BotReply{
		Move:    response.Move,
		Outcome: response.Winner.Outcome,
	}, nil
}
