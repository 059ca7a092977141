package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

const (
	DefaultEpisodes       = 50000
	DefaultProgressWindow = 1000

	rewardWin  = 10.0
	rewardDraw = 0.0
	rewardLoss = -10.0
	rewardStep = -0.1
)

type TrainingStats struct {
	Episodes          int     `json:"episodes"`
	Wins              int     `json:"wins"`
	LastWindowWinRate float64 `json:"last_window_win_rate"`
}

type TrainerConfig struct {
	Learner  LearnerParams
	Episodes int
	// Window - number of episodes per progress report.
	Window int
}

// Trainer - self-play loop: the learner plays A, the bot plays B.
type Trainer struct {
	logger *slog.Logger
	conf   TrainerConfig
	rnd    Random
}

func NewTrainer(logger *slog.Logger, conf TrainerConfig, rnd Random) *Trainer {
	if conf.Episodes <= 0 {
		conf.Episodes = DefaultEpisodes
	}

	if conf.Window <= 0 {
		conf.Window = DefaultProgressWindow
	}

	if rnd == nil {
		rnd = GlobalRandom()
	}

	return &Trainer{
		logger: logger.With("component", "trainer"),
		conf:   conf,
		rnd:    rnd,
	}
}

// Train - runs the configured number of episodes on a fresh table and returns it.
// The context is checked between episodes.
func (that *Trainer) Train(ctx context.Context) (entity.ValueTable, TrainingStats, error) {
	learner := NewQLearner(that.conf.Learner, entity.NewValueTable(), that.rnd)
	stats, err := that.TrainLearner(ctx, learner)

	return learner.Table(), stats, err
}

// TrainLearner - runs the episodes against the given learner's table.
func (that *Trainer) TrainLearner(ctx context.Context, learner *QLearner) (TrainingStats, error) {
	log := that.logger.With("method", "TrainLearner")

	bot := NewBotService(that.rnd)
	board := &entity.Board{}

	var stats TrainingStats
	windowWins := 0

	log.Info("training started", "episodes", that.conf.Episodes)

	for episode := 0; episode < that.conf.Episodes; episode++ {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("training interrupted after %d episodes: %w", episode, err)
		}

		if playEpisode(board, learner, bot) {
			stats.Wins++
			windowWins++
		}
		stats.Episodes++

		if stats.Episodes%that.conf.Window == 0 {
			stats.LastWindowWinRate = float64(windowWins) / float64(that.conf.Window)
			windowWins = 0
			log.Debug("training progress", "episode", stats.Episodes, "win_rate", stats.LastWindowWinRate)
		}
	}

	log.Info("training completed", "episodes", stats.Episodes, "wins", stats.Wins, "win_rate", stats.LastWindowWinRate)

	return stats, nil
}

// playEpisode - plays one game on a reset board, updating the learner after each of its moves.
// Returns true when the learner won.
func playEpisode(board *entity.Board, learner *QLearner, bot BotService) bool {
	board.Reset()
	state := board.State()

	for !board.IsFull() {
		action := learner.ChooseAction(state, board.EmptyIndices())
		_ = board.Place(action, entity.MarkA) // action comes from EmptyIndices
		nextState := board.State()

		if board.Winner == entity.MarkA {
			learner.Update(state, action, rewardWin, nextState)
			return true
		}

		if board.IsFull() {
			learner.Update(state, action, rewardDraw, nextState)
			return false
		}

		_ = board.Place(bot.NextMove(board), entity.MarkB)
		nextState = board.State()

		if board.Winner == entity.MarkB {
			learner.Update(state, action, rewardLoss, nextState)
			return false
		}

		learner.Update(state, action, rewardStep, nextState)
		state = nextState
	}

	return false
}
