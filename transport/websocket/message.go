package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

const (
	actionStart = "start"
	actionMove  = "move"
	actionReset = "reset"
)

// Message - JSON object exchanged with the browser client in both directions.
type Message struct {
	Action      string   `json:"action"`
	Board       []string `json:"board,omitempty"`
	Position    *int     `json:"position,omitempty"`
	FirstPlayer string   `json:"first_player,omitempty"`
}

// ParseRequest - decodes a client message into one of the session requests.
func ParseRequest(data []byte) (entity.Request, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidMessage, err)
	}

	switch msg.Action {
	case actionStart:
		return entity.StartRequest{}, nil
	case actionReset:
		return entity.ResetRequest{}, nil
	case actionMove:
		state, err := entity.ParseState(msg.Board)
		if err != nil {
			return nil, err
		}

		position := entity.NoMove
		if msg.Position != nil {
			position = *msg.Position
		}

		return entity.MoveRequest{Board: state, Position: position}, nil
	default:
		return nil, fmt.Errorf("%w: unknown action %q", apperror.ErrInvalidMessage, msg.Action)
	}
}

// EncodeReply - converts a session reply into its wire message.
func EncodeReply(reply entity.Reply) (Message, error) {
	switch msg := reply.(type) {
	case entity.StartReply:
		return Message{Action: actionStart, FirstPlayer: msg.FirstPlayer}, nil
	case entity.MoveReply:
		position := msg.Position
		return Message{Action: actionMove, Position: &position}, nil
	default:
		return Message{}, fmt.Errorf("unsupported reply %T", reply)
	}
}
