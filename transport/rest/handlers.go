package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/service"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	TrainHandler(w http.ResponseWriter, r *http.Request)
}

type agentTrainer interface {
	Retrain(ctx context.Context) (service.TrainingStats, error)
}

type handlers struct {
	logger  *slog.Logger
	trainer agentTrainer
}

type trainResponse struct {
	Status string                 `json:"status"`
	Stats  *service.TrainingStats `json:"stats,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

func NewHandlers(logger *slog.Logger, trainer agentTrainer) Handlers {
	return &handlers{
		logger:  logger.With("component", "rest"),
		trainer: trainer,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// TrainHandler - runs a full training pass and answers once the new table is persisted.
func (that *handlers) TrainHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "TrainHandler")

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Info("training requested")

	stats, err := that.trainer.Retrain(r.Context())
	switch {
	case errors.Is(err, apperror.ErrTrainingInProgress):
		that.writeJSON(w, http.StatusConflict, trainResponse{Status: "busy", Error: err.Error()})
	case err != nil:
		log.Error("training failed", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, trainResponse{Status: "failed", Error: err.Error()})
	default:
		that.writeJSON(w, http.StatusOK, trainResponse{Status: "ok", Stats: &stats})
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
