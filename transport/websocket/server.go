package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/rocketscienceinc/tictactoe-agent/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-agent/internal/usecase"
)

const (
	sessionCookieName = "user_session"
	shutdownTimeout   = 5 * time.Second
	maxMessageSize    = 4096
)

type agent interface {
	EnsureTrained(ctx context.Context) error
	Decide(state entity.State) (int, error)
}

type Server struct {
	logger   *slog.Logger
	agent    agent
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, agent agent) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		agent:  agent,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the client page is served from another origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler - game endpoint, every request is upgraded to a websocket running its own session.
func (that *Server) Handler(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
		that.upgradeToWebSocket(ctx, writer, req)
	})
}

// Start - starts WebSocket server and blocks until ctx is canceled or the listener fails.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/", that.Handler(ctx))
	mux.Handle("/ws", that.Handler(ctx))

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket and serves it until it closes.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	sessionID, header := that.sessionCookie(req)
	log := that.logger.With("method", "upgradeConnection", "session", sessionID)

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// unblocks ReadMessage on server shutdown
	go func() {
		<-connCtx.Done()
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	session := usecase.NewSession(that.logger.With("session", sessionID), that.agent, nil)
	that.handleMessages(connCtx, conn, session, log)
}

// sessionCookie - reuses the client's session cookie or creates a new one to be set on upgrade.
func (that *Server) sessionCookie(req *http.Request) (string, http.Header) {
	if cookie, err := req.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	cookie := &http.Cookie{
		Name:    sessionCookieName,
		Value:   pkg.GenerateNewSessionID(),
		Expires: time.Now().Add(24 * time.Hour),
		Path:    "/",
	}

	header := http.Header{}
	header.Add("Set-Cookie", cookie.String())

	return cookie.Value, header
}
