package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/caro-client/internal/entity"
	"github.com/rocketscienceinc/caro-client/internal/repository"
)

type fakeSessionSource struct {
	snapshot entity.SessionSnapshot
	ok       bool
}

func (that fakeSessionSource) Snapshot() (entity.SessionSnapshot, bool) {
	return that.snapshot, that.ok
}

type fakeHistory struct {
	games     map[string]*entity.SessionSnapshot
	err       error
	lastLimit int
}

func (that *fakeHistory) GetByID(_ context.Context, id string) (*entity.SessionSnapshot, error) {
	if that.err != nil {
		return nil, that.err
	}
	game, ok := that.games[id]
	if !ok {
		return &entity.SessionSnapshot{}, repository.ErrGameNotFound
	}
	return game, nil
}

func (that *fakeHistory) ListRecent(_ context.Context, limit int) ([]*entity.SessionSnapshot, error) {
	that.lastLimit = limit
	if that.err != nil {
		return nil, that.err
	}
	var games []*entity.SessionSnapshot
	for _, game := range that.games {
		games = append(games, game)
	}
	return games, nil
}

func (that *fakeHistory) DeleteByID(_ context.Context, id string) error {
	if that.err != nil {
		return that.err
	}
	if _, ok := that.games[id]; !ok {
		return repository.ErrGameNotFound
	}
	delete(that.games, id)
	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func serve(handler http.Handler, target string) *httptest.ResponseRecorder {
	return serveMethod(handler, http.MethodGet, target)
}

func serveMethod(handler http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHandlers_Ping(t *testing.T) {
	rec := serve(NewHandlers(newTestLogger(), fakeSessionSource{}, nil).Routes(), "/ping")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestHandlers_Session(t *testing.T) {
	t.Run("Returns the live snapshot", func(t *testing.T) {
		// Given: a game in progress
		snapshot := entity.SessionSnapshot{ID: "abc", Rows: 5, Cols: 5, Phase: entity.PhaseAwaitingAI}
		routes := NewHandlers(newTestLogger(), fakeSessionSource{snapshot: snapshot, ok: true}, nil).Routes()

		// When: the session is requested
		rec := serve(routes, "/session")

		// Then: the snapshot is returned as JSON
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var got entity.SessionSnapshot
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "abc", got.ID)
		assert.Equal(t, entity.PhaseAwaitingAI, got.Phase)
	})

	t.Run("Not found before the first game", func(t *testing.T) {
		rec := serve(NewHandlers(newTestLogger(), fakeSessionSource{}, nil).Routes(), "/session")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandlers_Games(t *testing.T) {
	history := func() *fakeHistory {
		return &fakeHistory{games: map[string]*entity.SessionSnapshot{
			"g1": {ID: "g1", Phase: entity.PhaseFinished, Outcome: entity.OutcomeDraw},
		}}
	}

	t.Run("Routes are absent without a history store", func(t *testing.T) {
		rec := serve(NewHandlers(newTestLogger(), fakeSessionSource{}, nil).Routes(), "/games")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Lists recent games with a capped limit", func(t *testing.T) {
		store := history()
		routes := NewHandlers(newTestLogger(), fakeSessionSource{}, store).Routes()

		rec := serve(routes, "/games?limit=1000")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, maxGamesLimit, store.lastLimit)

		var games []entity.SessionSnapshot
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&games))
		require.Len(t, games, 1)
		assert.Equal(t, "g1", games[0].ID)
	})

	t.Run("Empty history is an empty list", func(t *testing.T) {
		routes := NewHandlers(newTestLogger(), fakeSessionSource{}, &fakeHistory{}).Routes()

		rec := serve(routes, "/games")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("Bad limit", func(t *testing.T) {
		rec := serve(NewHandlers(newTestLogger(), fakeSessionSource{}, history()).Routes(), "/games?limit=zero")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Gets one game by id", func(t *testing.T) {
		rec := serve(NewHandlers(newTestLogger(), fakeSessionSource{}, history()).Routes(), "/games/g1")

		require.Equal(t, http.StatusOK, rec.Code)

		var got entity.SessionSnapshot
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, entity.OutcomeDraw, got.Outcome)
	})

	t.Run("Unknown id", func(t *testing.T) {
		rec := serve(NewHandlers(newTestLogger(), fakeSessionSource{}, history()).Routes(), "/games/nope")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Deletes a game by id", func(t *testing.T) {
		// Given: a history holding g1
		store := history()
		routes := NewHandlers(newTestLogger(), fakeSessionSource{}, store).Routes()

		// When: g1 is deleted
		rec := serveMethod(routes, http.MethodDelete, "/games/g1")

		// Then: it is gone and a second delete is not found
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.NotContains(t, store.games, "g1")
		assert.Equal(t, http.StatusNotFound, serveMethod(routes, http.MethodDelete, "/games/g1").Code)
	})

	t.Run("Storage failure", func(t *testing.T) {
		store := &fakeHistory{err: errors.New("connection refused")}
		routes := NewHandlers(newTestLogger(), fakeSessionSource{}, store).Routes()

		assert.Equal(t, http.StatusInternalServerError, serve(routes, "/games").Code)
		assert.Equal(t, http.StatusInternalServerError, serve(routes, "/games/g1").Code)
		assert.Equal(t, http.StatusInternalServerError, serveMethod(routes, http.MethodDelete, "/games/g1").Code)
	})
}
