package service

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

const centerCell = 4

// Random - source of randomness for move selection. *rand.Rand satisfies it.
type Random interface {
	IntN(n int) int
	Float64() float64
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int   { return rand.IntN(n) } //nolint: gosec // it's ok
func (globalRandom) Float64() float64 { return rand.Float64() } //nolint: gosec // it's ok

// GlobalRandom - Random backed by the package level generator of math/rand/v2, safe for concurrent use.
func GlobalRandom() Random {
	return globalRandom{}
}

// BotService - hand-written opponent used as the training sparring partner and as the main serving policy.
type BotService interface {
	NextMove(board *entity.Board) int
}

type botService struct {
	rnd Random
}

func NewBotService(rnd Random) BotService {
	if rnd == nil {
		rnd = GlobalRandom()
	}

	return &botService{rnd: rnd}
}

// NextMove - picks a cell on a board that has at least one empty cell:
// a cell completing a line for B, then for A, then the center, a random corner, any random cell.
// B is always probed first whichever side is to move.
func (that *botService) NextMove(board *entity.Board) int {
	available := board.EmptyIndices()
	if len(available) == 0 {
		return entity.NoMove
	}

	for _, mark := range [...]entity.Mark{entity.MarkB, entity.MarkA} {
		for _, cell := range available {
			if board.WouldWin(cell, mark) {
				return cell
			}
		}
	}

	if board.Cells[centerCell] == entity.Empty {
		return centerCell
	}

	if corners := board.EmptyCorners(); len(corners) > 0 {
		return corners[that.rnd.IntN(len(corners))]
	}

	return available[that.rnd.IntN(len(available))]
}
