package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
)

// Mark - content of a board cell.
type Mark uint8

const (
	Empty Mark = iota
	MarkA
	MarkB
)

const (
	EmptyCell = ""
	PlayerA   = "A"
	PlayerB   = "B"
)

func (that Mark) String() string {
	switch that {
	case MarkA:
		return PlayerA
	case MarkB:
		return PlayerB
	default:
		return EmptyCell
	}
}

func (that Mark) Opponent() Mark {
	switch that {
	case MarkA:
		return MarkB
	case MarkB:
		return MarkA
	default:
		return Empty
	}
}

// ParseMark - converts a wire cell value into a Mark.
// The browser client writes X/O and may send a blank cell as a space, both are accepted.
func ParseMark(value string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case EmptyCell:
		return Empty, nil
	case PlayerA, "X":
		return MarkA, nil
	case PlayerB, "O":
		return MarkB, nil
	default:
		return Empty, fmt.Errorf("%w: unknown cell value %q", apperror.ErrInvalidMessage, value)
	}
}

// ParseState - converts a wire board into a State. The board must have exactly nine cells.
func ParseState(cells []string) (State, error) {
	var state State

	if len(cells) != BoardSize {
		return state, fmt.Errorf("%w: board has %d cells", apperror.ErrInvalidMessage, len(cells))
	}

	for i, value := range cells {
		mark, err := ParseMark(value)
		if err != nil {
			return state, err
		}
		state[i] = mark
	}

	return state, nil
}

// Strings - returns the wire representation of the state.
func (that State) Strings() []string {
	cells := make([]string, len(that))
	for i, mark := range that {
		cells[i] = mark.String()
	}

	return cells
}
