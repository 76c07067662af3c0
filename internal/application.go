package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/rest"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	gameManager := usecase.NewGameManager(logger)

	if conf.Redis.Enabled {
		redisStorage, err := connectRedis(ctx, conf)
		if err != nil {
			return err
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		gameManager.AddListener(repository.NewStatePublisher(redisStorage.Connection, conf.Redis.Channel))
		log.Info("Publishing game states to redis", "channel", conf.Redis.Channel)
	}

	wsServer := websocket.New(logger, gameManager)
	gameManager.AddListener(wsServer)

	router := rest.NewRouter(logger, gameManager)
	router.Get("/ws", wsServer.ServeHTTP)

	httpServer := rest.New(logger, conf.HTTPPort, router)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		httpErrCh <- httpServer.Start()
	}()

	select {
	case err := <-httpErrCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer shutdownCancel()

	wsServer.Close()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}

	return <-httpErrCh
}

func connectRedis(ctx context.Context, conf *config.Config) (*storage.RedisStorage, error) {
	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == ":" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return redisStorage, nil
}
