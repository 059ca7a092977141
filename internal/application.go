package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-agent/internal/config"
	"github.com/rocketscienceinc/tictactoe-agent/internal/repository"
	"github.com/rocketscienceinc/tictactoe-agent/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-agent/internal/service"
	"github.com/rocketscienceinc/tictactoe-agent/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-agent/transport/rest"
	"github.com/rocketscienceinc/tictactoe-agent/transport/websocket"
)

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrUnknownStorage = errors.New("unknown storage driver")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	repo, closeRepo, err := openRepository(ctx, conf.Storage)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeRepo(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	agent := newAgent(logger, conf.Agent, repo)

	// the table is prepared in the background, sessions wait for it on their first decision
	go func() {
		if trainErr := agent.EnsureTrained(ctx); trainErr != nil {
			log.Error("agent is not ready", "error", trainErr)
		}
	}()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		router := rest.NewRouter(rest.NewHandlers(logger, agent), conf.StaticDir)
		if httpErr := rest.Start(ctx, logger, conf.HTTPPort, router); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, agent)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newAgent(logger *slog.Logger, conf config.Agent, repo repository.ValueTableRepository) *usecase.Agent {
	params := service.LearnerParams{
		Alpha:   conf.Alpha,
		Gamma:   conf.Gamma,
		Epsilon: conf.Epsilon,
	}

	trainer := service.NewTrainer(logger, service.TrainerConfig{
		Learner:  params,
		Episodes: conf.Episodes,
		Window:   conf.ProgressWindow,
	}, nil)

	return usecase.NewAgent(logger, usecase.AgentConfig{
		Learner:         params,
		LearnedMoveRate: conf.LearnedMoveRate,
	}, repo, trainer, nil)
}

// openRepository - picks the value table backend named by the storage driver.
func openRepository(ctx context.Context, conf config.Storage) (repository.ValueTableRepository, func() error, error) {
	switch conf.Driver {
	case config.DriverFile, "":
		return repository.NewFileValueTableRepository(conf.FilePath), func() error { return nil }, nil

	case config.DriverRedis:
		addr := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, addr)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisValueTableRepository(redisStorage.Connection, conf.TableName), redisStorage.Close, nil

	case config.DriverSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(ctx, conf.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteValueTableRepository(sqliteStorage.Connection, conf.TableName), sqliteStorage.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorage, conf.Driver)
	}
}
