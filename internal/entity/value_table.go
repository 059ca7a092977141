package entity

// StateAction - key of the value table.
type StateAction struct {
	State  State
	Action int
}

// ValueTable - learned estimate of the cumulative reward for playing Action in State.
// Missing pairs are worth 0.
type ValueTable map[StateAction]float64

func NewValueTable() ValueTable {
	return make(ValueTable)
}

func (that ValueTable) Get(state State, action int) float64 {
	return that[StateAction{State: state, Action: action}]
}

func (that ValueTable) Set(state State, action int, value float64) {
	that[StateAction{State: state, Action: action}] = value
}
