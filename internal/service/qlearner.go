package service

import (
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

const (
	DefaultAlpha   = 0.5
	DefaultGamma   = 0.9
	DefaultEpsilon = 0.05
)

type LearnerParams struct {
	Alpha   float64 // learning rate
	Gamma   float64 // discount
	Epsilon float64 // exploration rate
}

func DefaultLearnerParams() LearnerParams {
	return LearnerParams{
		Alpha:   DefaultAlpha,
		Gamma:   DefaultGamma,
		Epsilon: DefaultEpsilon,
	}
}

// QLearner - tabular Q-learning over a single value table.
// Update mutates the table, so a learner must not be updated concurrently.
// ChooseAction and Value only read it.
type QLearner struct {
	params LearnerParams
	table  entity.ValueTable
	rnd    Random
}

func NewQLearner(params LearnerParams, table entity.ValueTable, rnd Random) *QLearner {
	if table == nil {
		table = entity.NewValueTable()
	}

	if rnd == nil {
		rnd = GlobalRandom()
	}

	return &QLearner{
		params: params,
		table:  table,
		rnd:    rnd,
	}
}

func (that *QLearner) Table() entity.ValueTable {
	return that.table
}

func (that *QLearner) Params() LearnerParams {
	return that.params
}

// Value - current estimate for the pair, 0 when never updated.
func (that *QLearner) Value(state entity.State, action int) float64 {
	return that.table.Get(state, action)
}

// Update - applies Q(s,a) += α·(r + γ·max Q(s',·) − Q(s,a)).
// The max runs over all nine cells of nextState, occupied ones included.
func (that *QLearner) Update(state entity.State, action int, reward float64, nextState entity.State) {
	future := that.table.Get(nextState, 0)
	for a := 1; a < entity.BoardSize; a++ {
		if v := that.table.Get(nextState, a); v > future {
			future = v
		}
	}

	current := that.table.Get(state, action)
	that.table.Set(state, action, current+that.params.Alpha*(reward+that.params.Gamma*future-current))
}

// ChooseAction - ε-greedy choice among available. Ties go to the earliest action in available.
func (that *QLearner) ChooseAction(state entity.State, available []int) int {
	if len(available) == 0 {
		return entity.NoMove
	}

	if that.rnd.Float64() < that.params.Epsilon {
		return available[that.rnd.IntN(len(available))]
	}

	best := available[0]
	bestValue := that.table.Get(state, best)
	for _, action := range available[1:] {
		if v := that.table.Get(state, action); v > bestValue {
			best, bestValue = action, v
		}
	}

	return best
}
