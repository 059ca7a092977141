package service

import (
	"math/rand/v2"
	"testing"

	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/stretchr/testify/assert"
)

func newSeededRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint: gosec // it's ok
}

func boardOf(cells ...string) *entity.Board {
	state, err := entity.ParseState(cells)
	if err != nil {
		panic(err)
	}

	board := &entity.Board{}
	board.Load(state)

	return board
}

func TestBotService_NextMove(t *testing.T) {
	bot := NewBotService(newSeededRandom(1))

	t.Run("Completes A's line when B cannot win", func(t *testing.T) {
		// Given: A owns cells 0 and 1
		board := boardOf("A", "A", "", "", "", "", "", "", "")

		// When: the bot picks a move
		move := bot.NextMove(board)

		// Then: it plays the cell finishing the top row
		assert.Equal(t, 2, move)
	})

	t.Run("B's winning cell is preferred over A's", func(t *testing.T) {
		// Given: A can win on 2 and B can win on 8
		board := boardOf(
			"A", "A", "",
			"", "", "",
			"B", "B", "",
		)

		// When: the bot picks a move
		move := bot.NextMove(board)

		// Then: the B pass runs first and returns 8
		assert.Equal(t, 8, move)
	})

	t.Run("Lowest winning cell is returned within a pass", func(t *testing.T) {
		// Given: B can win on 2 (top row) and on 6 (left column)
		board := boardOf(
			"B", "B", "",
			"B", "A", "A",
			"", "A", "",
		)

		// Then: the lower index comes first
		assert.Equal(t, 2, bot.NextMove(board))
	})

	t.Run("Takes the center when nobody threatens", func(t *testing.T) {
		board := boardOf("A", "", "", "", "", "", "", "", "")

		assert.Equal(t, 4, bot.NextMove(board))
	})

	t.Run("Takes a free corner when the center is taken", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			// Given: only the center is taken
			board := boardOf("", "", "", "", "A", "", "", "", "")

			// When: the bot picks a move
			move := bot.NextMove(board)

			// Then: the move is one of the corners
			assert.Contains(t, []int{0, 2, 6, 8}, move)
		}
	})

	t.Run("Blocks A when B has no winning cell", func(t *testing.T) {
		// Given: A threatens the left column and the bottom row, B threatens nothing
		board := boardOf(
			"A", "", "B",
			"", "B", "",
			"A", "", "A",
		)

		// When: the bot picks a move
		move := bot.NextMove(board)

		// Then: the lowest of A's winning cells is returned
		assert.Equal(t, 3, move)
	})

	t.Run("Random fallback stays inside the empty cells", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			// Given: a position with no threats and no free center or corner
			board := boardOf(
				"A", "", "B",
				"B", "B", "A",
				"A", "", "B",
			)

			// When: the bot picks a move
			move := bot.NextMove(board)

			// Then: it is one of the two empty edges
			assert.Contains(t, []int{1, 7}, move)
		}
	})

	t.Run("Full board has no move", func(t *testing.T) {
		board := boardOf(
			"A", "B", "A",
			"B", "A", "B",
			"B", "A", "B",
		)

		assert.Equal(t, entity.NoMove, bot.NextMove(board))
	})
}
