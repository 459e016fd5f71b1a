package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/caro-client/internal/config"
	"github.com/rocketscienceinc/caro-client/internal/pkg"
	"github.com/rocketscienceinc/caro-client/internal/repository"
	"github.com/rocketscienceinc/caro-client/internal/repository/storage"
	"github.com/rocketscienceinc/caro-client/internal/service"
	"github.com/rocketscienceinc/caro-client/internal/transport/console"
	"github.com/rocketscienceinc/caro-client/internal/transport/engine"
	"github.com/rocketscienceinc/caro-client/transport/rest"
)

// RunApp - runs the application until the player quits or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	// history stays a nil interface when redis is disabled.
	var history repository.GameRepository
	if conf.Redis.Enabled {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		history = repository.NewGameRepository(redisStorage.Connection, conf.Redis.TTL)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("could not create screen: %w", err)
	}
	if err = screen.Init(); err != nil {
		return fmt.Errorf("could not init screen: %w", err)
	}
	defer screen.Fini()

	settings := conf.Game.Settings()
	log.Info("Starting game client",
		"engine", conf.Engine.URL,
		"rows", settings.Rows,
		"cols", settings.Cols,
		"win_streak", settings.Rules.WinStreak,
		"difficulty", settings.Rules.Difficulty,
	)

	engineClient := engine.New(logger, conf.Engine.URL, conf.Engine.Timeout)
	botService := service.NewBotService(engineClient)
	ui := console.New(logger, screen, settings)
	gamePlay := service.NewGamePlayService(logger, botService, ui, history, pkg.NewTimerScheduler(), conf.Game.OpeningDelay)

	// run HTTP status server
	httpErrCh := make(chan error, 1)
	if conf.HTTPPort != "" {
		go func() {
			log.Info("Starting HTTP server", "port", conf.HTTPPort)
			handlers := rest.NewHandlers(logger, gamePlay, history)
			if httpErr := rest.Start(ctx, conf.HTTPPort, handlers.Routes()); httpErr != nil {
				log.Error("HTTP server error", "error", httpErr)
				httpErrCh <- httpErr
				cancel()
			}
		}()
	}

	if err = ui.Run(ctx, gamePlay); err != nil {
		return fmt.Errorf("console error: %w", err)
	}
	cancel()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	default:
		log.Info("Application stopped")
		return nil
	}
}
