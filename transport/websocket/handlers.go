package websocket

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

type sessionHandler interface {
	Handle(ctx context.Context, req entity.Request) ([]entity.Reply, error)
}

// handleMessages - processes messages from the client in arrival order until the connection closes.
// A bad message is logged and skipped, it never closes the connection.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, session sessionHandler, log *slog.Logger) {
	log = log.With("method", "handleMessages")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
				return
			}

			log.Info("client disconnected", "reason", err)
			return
		}

		req, err := ParseRequest(data)
		if err != nil {
			log.Warn("dropping invalid message", "error", err)
			continue
		}

		replies, err := that.handleRequest(ctx, session, req)
		if err != nil {
			log.Error("error processing message", "error", err)
			continue
		}

		if err = that.sendReplies(conn, replies); err != nil {
			log.Error("failed to send response", "error", err)
			return
		}
	}
}

// handleRequest - runs one request, a panic is turned into an error so the connection survives it.
func (that *Server) handleRequest(ctx context.Context, session sessionHandler, req entity.Request) (replies []entity.Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			replies = nil
			err = fmt.Errorf("recovered from panic: %v", r)
		}
	}()

	return session.Handle(ctx, req)
}

func (that *Server) sendReplies(conn *websocket.Conn, replies []entity.Reply) error {
	for _, reply := range replies {
		msg, err := EncodeReply(reply)
		if err != nil {
			return err
		}

		if err = conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("failed to write message: %w", err)
		}
	}

	return nil
}
