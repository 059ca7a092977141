package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/rocketscienceinc/tictactoe-agent/internal/service"
)

type SessionState int

const (
	StateIdle SessionState = iota
	StateAwaitingFirstMove
	StateInProgress
	StateTerminal
)

func (that SessionState) String() string {
	switch that {
	case StateIdle:
		return "idle"
	case StateAwaitingFirstMove:
		return "awaiting_first_move"
	case StateInProgress:
		return "in_progress"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

const (
	// the remote player always plays A, the engine B
	playerMark = entity.MarkA
	agentMark  = entity.MarkB
)

type decider interface {
	EnsureTrained(ctx context.Context) error
	Decide(state entity.State) (int, error)
}

// Session - one game bound to one connection. Requests must be handled from a single
// goroutine; the session owns its board and is not safe for concurrent use.
type Session struct {
	logger *slog.Logger
	agent  decider
	rnd    service.Random

	board entity.Board
	state SessionState
	turn  entity.Mark
}

func NewSession(logger *slog.Logger, agent decider, rnd service.Random) *Session {
	if rnd == nil {
		rnd = service.GlobalRandom()
	}

	return &Session{
		logger: logger,
		agent:  agent,
		rnd:    rnd,
	}
}

func (that *Session) State() SessionState {
	return that.state
}

// Turn - mark expected to move next, Empty outside of a running game.
func (that *Session) Turn() entity.Mark {
	return that.turn
}

func (that *Session) Board() entity.Board {
	return that.board
}

// Handle - applies one request and returns the replies to send back, in order.
func (that *Session) Handle(ctx context.Context, req entity.Request) ([]entity.Reply, error) {
	switch msg := req.(type) {
	case entity.StartRequest:
		return that.handleStart(ctx)
	case entity.MoveRequest:
		return that.handleMove(ctx, msg)
	case entity.ResetRequest:
		that.handleReset()
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unsupported request %T", apperror.ErrInvalidMessage, req)
	}
}

// handleStart - draws who opens the game. When the engine opens, its first move is part of the reply.
func (that *Session) handleStart(ctx context.Context) ([]entity.Reply, error) {
	log := that.logger.With("method", "handleStart")

	that.board.Reset()

	if that.rnd.IntN(2) == 0 {
		that.state = StateAwaitingFirstMove
		that.turn = playerMark

		log.Info("game starting", "first_player", entity.FirstPlayerPlayer)

		return []entity.Reply{entity.StartReply{FirstPlayer: entity.FirstPlayerPlayer}}, nil
	}

	log.Info("game starting", "first_player", entity.FirstPlayerAI)

	move, err := that.play(ctx)
	if err != nil {
		return nil, err
	}

	return []entity.Reply{
		entity.StartReply{FirstPlayer: entity.FirstPlayerAI},
		entity.MoveReply{Position: move},
	}, nil
}

// handleMove - takes the client's board as the truth and answers with the engine's cell.
func (that *Session) handleMove(ctx context.Context, msg entity.MoveRequest) ([]entity.Reply, error) {
	log := that.logger.With("method", "handleMove")

	that.board.Load(msg.Board)

	move, err := that.play(ctx)
	if err != nil {
		return nil, err
	}

	log.Info("agent chose move", "player_position", msg.Position, "position", move, "state", that.state.String())

	return []entity.Reply{entity.MoveReply{Position: move}}, nil
}

func (that *Session) handleReset() {
	that.board.Reset()
	that.state = StateIdle
	that.turn = entity.Empty

	that.logger.Info("game reset")
}

// play - asks the agent for a cell, applies it to the board and advances the state.
func (that *Session) play(ctx context.Context) (int, error) {
	if err := that.agent.EnsureTrained(ctx); err != nil {
		return entity.NoMove, fmt.Errorf("agent is not available: %w", err)
	}

	move, err := that.agent.Decide(that.board.State())
	if err != nil {
		return entity.NoMove, fmt.Errorf("failed to decide move: %w", err)
	}

	if move != entity.NoMove {
		if err = that.board.Place(move, agentMark); err != nil {
			return entity.NoMove, fmt.Errorf("agent produced an illegal move: %w", err)
		}
	}

	if that.board.IsFinished() {
		that.state = StateTerminal
		that.turn = entity.Empty
		return move, nil
	}

	that.state = StateInProgress
	that.turn = playerMark

	return move, nil
}
