package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/caro-client/internal/entity"
	"github.com/rocketscienceinc/caro-client/testing/suite"
)

func newSnapshot(id string, phase entity.Phase) entity.SessionSnapshot {
	cells := make([]entity.Cell, 25)
	cells[12] = entity.CellAI

	return entity.SessionSnapshot{
		ID:        id,
		Rows:      5,
		Cols:      5,
		Cells:     cells,
		Rules:     entity.Rules{WinStreak: 4, Difficulty: 2},
		Phase:     phase,
		Moves:     []entity.Move{{Index: 12, Player: entity.CellAI}},
		StartedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage, 0)

	// Given: a snapshot of a running session
	snapshot := newSnapshot("123", entity.PhaseAwaitingHuman)

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, snapshot)

	// Then: no error should be returned, and the session is stored
	require.NoError(t, err)

	stored, err := gameRepo.GetByID(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, snapshot, *stored)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Hour)

		// Given: a session saved twice, the second time finished
		snapshot := newSnapshot("123", entity.PhaseAwaitingAI)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, snapshot))

		snapshot.Phase = entity.PhaseFinished
		snapshot.Outcome = entity.OutcomeAIWin
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, snapshot))

		// When: GetByID is called with the existing ID
		retrieved, err := gameRepo.GetByID(ctx, snapshot.ID)

		// Then: the latest version is returned
		require.NoError(t, err)
		assert.Equal(t, entity.PhaseFinished, retrieved.Phase)
		assert.Equal(t, entity.OutcomeAIWin, retrieved.Outcome)

		ttl, err := st.Storage.TTL(ctx, "game:123").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// When: GetByID is called with non-existent ID
		retrieved, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Empty(t, retrieved.ID)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// Given: a stored session
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, newSnapshot("123", entity.PhaseFinished)))

		// When: DeleteByID is called with the existing ID
		err := gameRepo.DeleteByID(ctx, "123")

		// Then: it is gone from both the key space and the recent list
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, ErrGameNotFound)

		recent, err := gameRepo.ListRecent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, recent)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// When: DeleteByID is called with non-existent ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestGameRepository_ListRecent(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage, 0)

	// Given: three sessions, the first one touched again last
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, newSnapshot("a", entity.PhaseAwaitingHuman)))
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, newSnapshot("b", entity.PhaseAwaitingHuman)))
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, newSnapshot("c", entity.PhaseAwaitingHuman)))
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, newSnapshot("a", entity.PhaseFinished)))

	// When: listing the two most recent
	recent, err := gameRepo.ListRecent(ctx, 2)

	// Then: newest first, without duplicates
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "a", recent[0].ID)
	assert.Equal(t, entity.PhaseFinished, recent[0].Phase)
	assert.Equal(t, "c", recent[1].ID)

	// And: a snapshot that expired is skipped
	require.NoError(t, st.Storage.Del(ctx, "game:c").Err())
	recent, err = gameRepo.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "a", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
}
