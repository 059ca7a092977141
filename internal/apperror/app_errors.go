package apperror

import "errors"

var (
	ErrInvalidMessage         = errors.New("invalid message")
	ErrIllegalMove            = errors.New("illegal move")
	ErrNoMovesAvailable       = errors.New("no moves available")
	ErrPersistenceUnavailable = errors.New("no trained value table found")
	ErrTrainingInProgress     = errors.New("training is already in progress")
	ErrAgentNotReady          = errors.New("agent is not trained yet")
)
