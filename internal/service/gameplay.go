package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/caro-client/internal/apperror"
	"github.com/rocketscienceinc/caro-client/internal/entity"
	"github.com/rocketscienceinc/caro-client/internal/pkg"
)

type GamePlayService interface {
	StartGame(ctx context.Context, settings entity.Settings) (entity.SessionSnapshot, error)
	MakeTurn(ctx context.Context, cell int) error
	RetryBotTurn(ctx context.Context) error
	Snapshot() (entity.SessionSnapshot, bool)
}

type renderer interface {
	Render(snapshot entity.SessionSnapshot, status Status)
	GameOver(snapshot entity.SessionSnapshot, outcome entity.Outcome)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, snapshot entity.SessionSnapshot) error
}

type gamePlayService struct {
	logger *slog.Logger

	botService   BotService
	renderer     renderer
	gameRepo     gameRepo
	scheduler    pkg.Scheduler
	openingDelay time.Duration
	now          func() time.Time

	// mu serialises input events, engine replies and the opening timer.
	mu             sync.Mutex
	session        *entity.Session
	inFlight       bool
	openingPending bool
	cancelOpening  pkg.Cancel
}

// NewGamePlayService - gameRepo may be nil, in which case sessions are not
// persisted.
func NewGamePlayService(
	logger *slog.Logger,
	botService BotService,
	renderer renderer,
	gameRepo gameRepo,
	scheduler pkg.Scheduler,
	openingDelay time.Duration,
) GamePlayService {
	return &gamePlayService{
		logger:       logger.With("component", "gameplay"),
		botService:   botService,
		renderer:     renderer,
		gameRepo:     gameRepo,
		scheduler:    scheduler,
		openingDelay: openingDelay,
		now:          time.Now,
	}
}

// StartGame - replaces the current session with a fresh one. Replies and
// timers that belong to the old session are dropped when they arrive.
func (that *gamePlayService) StartGame(ctx context.Context, settings entity.Settings) (entity.SessionSnapshot, error) {
	settings = settings.Clamped()

	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return entity.SessionSnapshot{}, fmt.Errorf("error generating game ID: %w", err)
	}

	session, err := entity.NewSession(gameID, settings, that.now())
	if err != nil {
		return entity.SessionSnapshot{}, fmt.Errorf("failed to create session: %w", err)
	}

	that.mu.Lock()
	if that.cancelOpening != nil {
		that.cancelOpening()
		that.cancelOpening = nil
	}

	that.session = session
	that.inFlight = false
	that.openingPending = settings.FirstMove == entity.FirstMoveAI

	snapshot := session.Snapshot()
	if that.openingPending {
		that.renderer.Render(snapshot, statusOpening())
	} else {
		that.renderer.Render(snapshot, statusYourTurn())
	}
	that.persist(ctx, snapshot)
	openingPending := that.openingPending
	that.mu.Unlock()

	that.logger.Info("game started",
		"gameID", gameID, "rows", settings.Rows, "cols", settings.Cols,
		"winStreak", settings.Rules.WinStreak, "difficulty", settings.Rules.Difficulty,
		"firstMove", settings.FirstMove)

	if openingPending {
		cancel := that.scheduler.AfterFunc(that.openingDelay, func() {
			that.playOpening(ctx, session)
		})

		that.mu.Lock()
		if that.session == session && that.openingPending {
			that.cancelOpening = cancel
		}
		that.mu.Unlock()
	}

	return snapshot, nil
}

// MakeTurn - plays the human's mark and then waits for the engine's reply.
// Input that is not legal right now is ignored without an error. The error
// returned is the engine failure, which has already been rendered.
func (that *gamePlayService) MakeTurn(ctx context.Context, cell int) error {
	log := that.logger.With("method", "MakeTurn", "cell", cell)

	that.mu.Lock()
	session := that.session
	if session == nil {
		that.mu.Unlock()
		log.Debug("input ignored", "error", apperror.ErrGameNotStarted)
		return nil
	}

	if !session.CanPlayHuman(cell) {
		that.mu.Unlock()
		log.Debug("input ignored")
		return nil
	}

	if err := session.PlayHuman(cell); err != nil {
		that.mu.Unlock()
		log.Debug("input ignored", "error", err)
		return nil
	}

	snapshot := that.beginBotTurn(ctx, session)
	that.mu.Unlock()

	return that.requestBotTurn(ctx, session, snapshot)
}

// RetryBotTurn - asks the engine again after a failed request. It is the only
// way out of the awaiting-AI phase once a request has failed.
func (that *gamePlayService) RetryBotTurn(ctx context.Context) error {
	that.mu.Lock()
	session := that.session
	if session == nil {
		that.mu.Unlock()
		return apperror.ErrGameNotStarted
	}

	if session.Phase() != entity.PhaseAwaitingAI || that.inFlight || that.openingPending {
		that.mu.Unlock()
		return apperror.ErrNothingToRetry
	}

	snapshot := that.beginBotTurn(ctx, session)
	that.mu.Unlock()

	that.logger.Info("retrying engine turn", "gameID", session.ID())

	return that.requestBotTurn(ctx, session, snapshot)
}

func (that *gamePlayService) Snapshot() (entity.SessionSnapshot, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session == nil {
		return entity.SessionSnapshot{}, false
	}

	return that.session.Snapshot(), true
}

// beginBotTurn must be called with mu held.
func (that *gamePlayService) beginBotTurn(ctx context.Context, session *entity.Session) entity.SessionSnapshot {
	that.inFlight = true

	snapshot := session.Snapshot()
	that.renderer.Render(snapshot, statusThinking(snapshot.Rules))
	that.persist(ctx, snapshot)

	return snapshot
}

func (that *gamePlayService) requestBotTurn(ctx context.Context, session *entity.Session, snapshot entity.SessionSnapshot) error {
	log := that.logger.With("method", "requestBotTurn", "gameID", session.ID())

	reply, err := that.botService.MakeTurn(ctx, snapshot)

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session != session {
		log.Info("dropping engine reply for a replaced session")
		return nil
	}

	that.inFlight = false

	if err != nil {
		log.Error("engine request failed", "error", err)
		that.renderer.Render(session.Snapshot(), statusTransportError())
		return err
	}

	if err = session.ApplyBotReply(reply.Move, reply.Outcome, that.now()); err != nil {
		if errors.Is(err, apperror.ErrServerTrustViolation) {
			log.Error("rejected engine reply", "move", reply.Move, "outcome", reply.Outcome, "error", err)
			that.renderer.Render(session.Snapshot(), statusIllegalReply())
			return err
		}
		return fmt.Errorf("failed to apply engine reply: %w", err)
	}

	snapshot = session.Snapshot()
	that.persist(ctx, snapshot)

	that.renderer.Render(snapshot, statusFor(snapshot))

	if session.IsFinished() {
		log.Info("game finished", "outcome", session.Outcome(), "moves", len(snapshot.Moves))
		that.renderer.GameOver(snapshot, session.Outcome())
	}

	return nil
}

func (that *gamePlayService) playOpening(ctx context.Context, session *entity.Session) {
	log := that.logger.With("method", "playOpening", "gameID", session.ID())

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session != session || !that.openingPending {
		return
	}

	that.openingPending = false
	that.cancelOpening = nil

	index, err := session.PlayOpening()
	if err != nil {
		log.Error("failed to play opening move", "error", err)
		return
	}

	log.Debug("opening move played", "cell", index)

	snapshot := session.Snapshot()
	that.renderer.Render(snapshot, statusFor(snapshot))
	that.persist(ctx, snapshot)
}

// persist must be called with mu held. Storage errors never reach the player.
func (that *gamePlayService) persist(ctx context.Context, snapshot entity.SessionSnapshot) {
	if that.gameRepo == nil {
		return
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, snapshot); err != nil {
		that.logger.Error("failed to save session", "gameID", snapshot.ID, "error", err)
	}
}
