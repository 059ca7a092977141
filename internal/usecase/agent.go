package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/rocketscienceinc/tictactoe-agent/internal/service"
)

const DefaultLearnedMoveRate = 0.1

type valueTableRepo interface {
	Save(ctx context.Context, table entity.ValueTable) error
	Load(ctx context.Context) (entity.ValueTable, error)
}

type trainer interface {
	Train(ctx context.Context) (entity.ValueTable, service.TrainingStats, error)
}

type AgentConfig struct {
	// Learner - parameters used when the value table is consulted at serving time.
	Learner service.LearnerParams
	// LearnedMoveRate - share of decisions taken from the value table, the rest go to the bot.
	LearnedMoveRate float64
}

// Agent - shared decision maker. It is created unready; EnsureTrained loads or trains the
// value table once, after which Decide can be called from any number of sessions.
type Agent struct {
	logger  *slog.Logger
	conf    AgentConfig
	repo    valueTableRepo
	trainer trainer
	bot     service.BotService
	rnd     service.Random

	table atomic.Pointer[entity.ValueTable]

	// initSem serializes the first load-or-train, waiters can give up through their context.
	initSem chan struct{}
	trainMu sync.Mutex
}

func NewAgent(logger *slog.Logger, conf AgentConfig, repo valueTableRepo, trainer trainer, rnd service.Random) *Agent {
	if rnd == nil {
		rnd = service.GlobalRandom()
	}

	return &Agent{
		logger:  logger.With("component", "agent"),
		conf:    conf,
		repo:    repo,
		trainer: trainer,
		bot:     service.NewBotService(rnd),
		rnd:     rnd,
		initSem: make(chan struct{}, 1),
	}
}

func (that *Agent) Ready() bool {
	return that.table.Load() != nil
}

// EnsureTrained - blocks until a value table is available. A persisted table is loaded when
// there is one, otherwise a full training pass runs and its result is persisted.
func (that *Agent) EnsureTrained(ctx context.Context) error {
	if that.Ready() {
		return nil
	}

	select {
	case that.initSem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("waiting for agent initialization: %w", ctx.Err())
	}
	defer func() { <-that.initSem }()

	if that.Ready() {
		return nil
	}

	log := that.logger.With("method", "EnsureTrained")

	table, err := that.repo.Load(ctx)
	if err == nil {
		that.table.Store(&table)
		log.Info("loaded pre-trained value table", "entries", len(table))
		return nil
	}

	if errors.Is(err, apperror.ErrPersistenceUnavailable) {
		log.Info("no persisted value table, training a new one")
	} else {
		log.Warn("failed to load value table, training a new one", "error", err)
	}

	that.trainMu.Lock()
	defer that.trainMu.Unlock()

	// a table that trained but failed to persist still serves
	if _, err = that.trainAndStore(ctx); err != nil && !that.Ready() {
		return err
	}

	return nil
}

// Retrain - runs a fresh training pass, persists it and swaps it in for new decisions.
// Returns apperror.ErrTrainingInProgress when another pass is running.
func (that *Agent) Retrain(ctx context.Context) (service.TrainingStats, error) {
	if !that.trainMu.TryLock() {
		return service.TrainingStats{}, apperror.ErrTrainingInProgress
	}
	defer that.trainMu.Unlock()

	return that.trainAndStore(ctx)
}

// trainAndStore - must be called with trainMu held. The table is swapped in before it is saved.
func (that *Agent) trainAndStore(ctx context.Context) (service.TrainingStats, error) {
	log := that.logger.With("method", "trainAndStore")

	table, stats, err := that.trainer.Train(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to train value table: %w", err)
	}

	that.table.Store(&table)

	if err = that.repo.Save(ctx, table); err != nil {
		log.Error("failed to persist value table", "error", err)
		return stats, fmt.Errorf("failed to save value table: %w", err)
	}

	log.Info("value table trained and saved", "entries", len(table), "win_rate", stats.LastWindowWinRate)

	return stats, nil
}

// Decide - picks the next cell for the given board, or entity.NoMove when it is full.
// The value table is consulted for a LearnedMoveRate share of the calls, exploration included,
// the bot answers the rest.
func (that *Agent) Decide(state entity.State) (int, error) {
	tablePtr := that.table.Load()
	if tablePtr == nil {
		return entity.NoMove, apperror.ErrAgentNotReady
	}

	board := entity.Board{}
	board.Load(state)

	available := board.EmptyIndices()
	if len(available) == 0 {
		return entity.NoMove, nil
	}

	if that.rnd.Float64() < that.conf.LearnedMoveRate {
		learner := service.NewQLearner(that.conf.Learner, *tablePtr, that.rnd)
		return learner.ChooseAction(state, available), nil
	}

	return that.bot.NextMove(&board), nil
}
