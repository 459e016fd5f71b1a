package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/caro-client/internal/apperror"
	"github.com/rocketscienceinc/caro-client/internal/entity"
	"github.com/rocketscienceinc/caro-client/internal/transport/engine"
	mockedService "github.com/rocketscienceinc/caro-client/mocks/service"
)

func TestBotService_MakeTurn(t *testing.T) {
	ctx := context.Background()

	snapshot := entity.SessionSnapshot{
		ID:    "game-1",
		Rows:  5,
		Cols:  6,
		Cells: make([]entity.Cell, 30),
		Rules: entity.Rules{WinStreak: 4, Difficulty: 3},
		Phase: entity.PhaseAwaitingAI,
	}
	snapshot.Cells[7] = entity.CellHuman

	t.Run("Builds the request from the snapshot", func(t *testing.T) {
		// Given: an engine that answers with a move and no winner
		mockEngine := mockedService.NewMockengineClient(t)
		botService := NewBotService(mockEngine)

		mockEngine.EXPECT().
			Move(mock.Anything, engine.MoveRequest{
				Board:     snapshot.Cells,
				Rows:      5,
				Cols:      6,
				Depth:     3,
				WinStreak: 4,
			}).
			Return(&engine.MoveResponse{Move: intPtr(8)}, nil).
			Once()

		// When: asking the bot for its turn
		reply, err := botService.MakeTurn(ctx, snapshot)

		// Then: the move is passed through with no outcome
		require.NoError(t, err)
		require.NotNil(t, reply.Move)
		assert.Equal(t, 8, *reply.Move)
		assert.Equal(t, entity.OutcomeNone, reply.Outcome)
	})

	t.Run("Passes the outcome through without a move", func(t *testing.T) {
		mockEngine := mockedService.NewMockengineClient(t)
		botService := NewBotService(mockEngine)

		mockEngine.EXPECT().
			Move(mock.Anything, mock.AnythingOfType("engine.MoveRequest")).
			Return(&engine.MoveResponse{Winner: engine.Winner{Outcome: entity.OutcomeDraw}}, nil).
			Once()

		reply, err := botService.MakeTurn(ctx, snapshot)

		require.NoError(t, err)
		assert.Nil(t, reply.Move)
		assert.Equal(t, entity.OutcomeDraw, reply.Outcome)
	})

	t.Run("Wraps transport failures", func(t *testing.T) {
		mockEngine := mockedService.NewMockengineClient(t)
		botService := NewBotService(mockEngine)

		mockEngine.EXPECT().
			Move(mock.Anything, mock.Anything).
			Return(nil, errors.Join(apperror.ErrTransportFailure, errors.New("connection refused"))).
			Once()

		reply, err := botService.MakeTurn(ctx, snapshot)

		require.ErrorIs(t, err, apperror.ErrTransportFailure)
		assert.Equal(t, BotReply{}, reply)
	})
}

func intPtr(v int) *int { return &v }
