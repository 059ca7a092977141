package entity

// Request - closed set of messages a client can send during a session.
type Request interface {
	isRequest()
}

type StartRequest struct{}

// MoveRequest - the client's board after its own move. Position is the cell the client played,
// kept for logging only.
type MoveRequest struct {
	Board    State
	Position int
}

type ResetRequest struct{}

func (StartRequest) isRequest() {}
func (MoveRequest) isRequest()  {}
func (ResetRequest) isRequest() {}

const (
	FirstPlayerAI     = "AI"
	FirstPlayerPlayer = "Player"
)

// Reply - closed set of messages the engine sends back.
type Reply interface {
	isReply()
}

type StartReply struct {
	FirstPlayer string
}

type MoveReply struct {
	Position int
}

func (StartReply) isReply() {}
func (MoveReply) isReply()  {}
