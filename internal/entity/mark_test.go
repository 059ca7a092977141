package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	t.Run("Parses wire board with aliases", func(t *testing.T) {
		// Given: a board written by the browser client
		cells := []string{"A", "B", "", "X", "O", " ", "", "", ""}

		// When: it is parsed
		state, err := ParseState(cells)

		// Then: aliases map onto the two marks
		require.NoError(t, err)
		assert.Equal(t, State{MarkA, MarkB, Empty, MarkA, MarkB, Empty, Empty, Empty, Empty}, state)
	})

	t.Run("Rejects wrong cardinality", func(t *testing.T) {
		_, err := ParseState([]string{"A", "B"})

		require.ErrorIs(t, err, apperror.ErrInvalidMessage)
	})

	t.Run("Rejects unknown cell value", func(t *testing.T) {
		_, err := ParseState([]string{"A", "Z", "", "", "", "", "", "", ""})

		require.ErrorIs(t, err, apperror.ErrInvalidMessage)
	})
}

func TestState_Strings(t *testing.T) {
	state := State{MarkA, Empty, MarkB}

	assert.Equal(t, []string{"A", "", "B", "", "", "", "", "", ""}, state.Strings())
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, MarkB, MarkA.Opponent())
	assert.Equal(t, MarkA, MarkB.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())
}
