package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/caro-client/internal/entity"
	"github.com/rocketscienceinc/caro-client/internal/repository"
)

const (
	defaultGamesLimit = 20
	maxGamesLimit     = 100
)

type sessionSource interface {
	Snapshot() (entity.SessionSnapshot, bool)
}

type gameHistory interface {
	GetByID(ctx context.Context, id string) (*entity.SessionSnapshot, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.SessionSnapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

// Handlers - view of the running client: the live session and, when a history
// store is configured, past sessions, which may also be deleted.
type Handlers struct {
	logger  *slog.Logger
	game    sessionSource
	history gameHistory
}

// NewHandlers - history may be nil, in which case the /games routes are not mounted.
func NewHandlers(logger *slog.Logger, game sessionSource, history gameHistory) *Handlers {
	return &Handlers{
		logger:  logger.With("component", "rest"),
		game:    game,
		history: history,
	}
}

func (that *Handlers) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/ping", that.Ping)
	r.Get("/session", that.Session)

	if that.history != nil {
		r.Get("/games", that.ListGames)
		r.Get("/games/{id}", that.GetGame)
		r.Delete("/games/{id}", that.DeleteGame)
	}

	return r
}

func (that *Handlers) Session(w http.ResponseWriter, _ *http.Request) {
	snapshot, ok := that.game.Snapshot()
	if !ok {
		http.Error(w, "no game in progress", http.StatusNotFound)
		return
	}

	that.writeJSON(w, snapshot)
}

func (that *Handlers) ListGames(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ListGames")

	limit := defaultGamesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(parsed, maxGamesLimit)
	}

	games, err := that.history.ListRecent(r.Context(), limit)
	if err != nil {
		log.Error("failed to list games", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if games == nil {
		games = []*entity.SessionSnapshot{}
	}

	that.writeJSON(w, games)
}

func (that *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetGame")

	id := chi.URLParam(r, "id")

	game, err := that.history.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrGameNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("failed to get game", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, game)
}

func (that *Handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "DeleteGame")

	id := chi.URLParam(r, "id")

	err := that.history.DeleteByID(r.Context(), id)
	if errors.Is(err, repository.ErrGameNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("failed to delete game", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Handlers) writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
