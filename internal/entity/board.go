package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
)

const (
	BoardSize = 9

	// NoMove is returned instead of a cell index when the board has no empty cell.
	NoMove = -1
)

var (
	ErrInvalidCell  = fmt.Errorf("%w: invalid cell index", apperror.ErrIllegalMove)
	ErrCellOccupied = fmt.Errorf("%w: cell is already occupied", apperror.ErrIllegalMove)

	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}

	corners = [...]int{0, 2, 6, 8}
)

// State - immutable snapshot of the board cells, used as the value table key.
type State [BoardSize]Mark

type Board struct {
	Cells  State
	Winner Mark
}

// Place - puts the mark on the cell and records the winner if the move completes a line.
// The board is left untouched when the cell is out of range or occupied.
func (that *Board) Place(index int, mark Mark) error {
	if index < 0 || index >= BoardSize {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, index)
	}

	if that.Cells[index] != Empty {
		return fmt.Errorf("%w: cell %d", ErrCellOccupied, index)
	}

	that.Cells[index] = mark

	if that.IsWinningMove(index, mark) {
		that.Winner = mark
	}

	return nil
}

// IsWinningMove - reports whether the row, the column or, for even cells, a diagonal through index is all mark.
func (that *Board) IsWinningMove(index int, mark Mark) bool {
	row := index / 3
	if that.lineIs(mark, row*3, row*3+1, row*3+2) {
		return true
	}

	col := index % 3
	if that.lineIs(mark, col, col+3, col+6) {
		return true
	}

	// only even cells lie on a diagonal
	if index%2 == 0 {
		if that.lineIs(mark, 0, 4, 8) {
			return true
		}

		if that.lineIs(mark, 2, 4, 6) {
			return true
		}
	}

	return false
}

func (that *Board) lineIs(mark Mark, a, b, c int) bool {
	return that.Cells[a] == mark && that.Cells[b] == mark && that.Cells[c] == mark
}

// WouldWin - reports whether placing mark on the empty cell index would complete a line.
// The board itself is not modified.
func (that *Board) WouldWin(index int, mark Mark) bool {
	probe := *that
	probe.Cells[index] = mark

	return probe.IsWinningMove(index, mark)
}

// EmptyIndices - returns the empty cells in ascending order.
func (that *Board) EmptyIndices() []int {
	indices := make([]int, 0, BoardSize)
	for i, cell := range that.Cells {
		if cell == Empty {
			indices = append(indices, i)
		}
	}

	return indices
}

// EmptyCorners - returns the empty corner cells in ascending order.
func (that *Board) EmptyCorners() []int {
	indices := make([]int, 0, len(corners))
	for _, i := range corners {
		if that.Cells[i] == Empty {
			indices = append(indices, i)
		}
	}

	return indices
}

func (that *Board) IsFull() bool {
	for _, cell := range that.Cells {
		if cell == Empty {
			return false
		}
	}

	return true
}

// IsFinished - true once someone has won or no cell is left.
func (that *Board) IsFinished() bool {
	return that.Winner != Empty || that.IsFull()
}

func (that *Board) Reset() {
	that.Cells = State{}
	that.Winner = Empty
}

// State - returns a copy of the cells.
func (that *Board) State() State {
	return that.Cells
}

// Load - replaces the cells with a snapshot received from outside and recomputes the winner
// over every line, since the last move is not known.
func (that *Board) Load(state State) {
	that.Cells = state
	that.Winner = DetermineWinner(state)
}

// DetermineWinner - returns the mark that owns a full line, or Empty.
func DetermineWinner(state State) Mark {
	for _, combo := range WinCombos {
		a, b, c := state[combo[0]], state[combo[1]], state[combo[2]]
		if a != Empty && a == b && b == c {
			return a
		}
	}

	return Empty
}
