package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTrainer struct {
	mock.Mock
}

func (that *mockTrainer) Retrain(ctx context.Context) (service.TrainingStats, error) {
	args := that.Called(ctx)
	return args.Get(0).(service.TrainingStats), args.Error(1)
}

func newRouter(t *testing.T, trainer agentTrainer) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>board</html>"), 0o600))

	return NewRouter(NewHandlers(logger, trainer), staticDir)
}

func TestPingHandler(t *testing.T) {
	router := newRouter(t, &mockTrainer{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestTrainHandler(t *testing.T) {
	t.Run("Acknowledges a completed training", func(t *testing.T) {
		// Given: a trainer that succeeds
		trainer := &mockTrainer{}
		trainer.On("Retrain", mock.Anything).
			Return(service.TrainingStats{Episodes: 100, Wins: 40, LastWindowWinRate: 0.5}, nil).
			Once()
		router := newRouter(t, trainer)

		// When: training is requested
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/train", nil))

		// Then: the stats are returned
		require.Equal(t, http.StatusOK, rec.Code)

		var body trainResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "ok", body.Status)
		require.NotNil(t, body.Stats)
		assert.Equal(t, 100, body.Stats.Episodes)
		trainer.AssertExpectations(t)
	})

	t.Run("Conflict while another pass runs", func(t *testing.T) {
		trainer := &mockTrainer{}
		trainer.On("Retrain", mock.Anything).Return(service.TrainingStats{}, apperror.ErrTrainingInProgress).Once()
		router := newRouter(t, trainer)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/train", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Failure is reported", func(t *testing.T) {
		trainer := &mockTrainer{}
		trainer.On("Retrain", mock.Anything).Return(service.TrainingStats{}, errors.New("disk full")).Once()
		router := newRouter(t, trainer)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/train", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "disk full")
	})

	t.Run("Only POST is accepted", func(t *testing.T) {
		trainer := &mockTrainer{}
		router := newRouter(t, trainer)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/train", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		trainer.AssertNotCalled(t, "Retrain", mock.Anything)
	})
}

func TestStaticClient(t *testing.T) {
	router := newRouter(t, &mockTrainer{})

	t.Run("Serves the client with CORS", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "board")
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/train", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
