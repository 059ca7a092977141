package application

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/config"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("File driver", func(t *testing.T) {
		// Given: a file backend in a temp dir
		conf := config.Storage{Driver: config.DriverFile, FilePath: filepath.Join(t.TempDir(), "q_table.gob")}

		// When: the repository is opened
		repo, closeRepo, err := openRepository(ctx, conf)
		require.NoError(t, err)
		defer func() { require.NoError(t, closeRepo()) }()

		// Then: it starts empty and keeps what is saved
		_, err = repo.Load(ctx)
		require.ErrorIs(t, err, apperror.ErrPersistenceUnavailable)

		table := entity.NewValueTable()
		table.Set(entity.State{}, 4, 1.5)
		require.NoError(t, repo.Save(ctx, table))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 1.5, loaded.Get(entity.State{}, 4), 1e-12)
	})

	t.Run("SQLite driver", func(t *testing.T) {
		conf := config.Storage{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "data", "q_table.db"),
			TableName:  "default",
		}

		repo, closeRepo, err := openRepository(ctx, conf)
		require.NoError(t, err)
		defer func() { require.NoError(t, closeRepo()) }()

		table := entity.NewValueTable()
		table.Set(entity.State{4: entity.MarkA}, 0, -0.05)
		require.NoError(t, repo.Save(ctx, table))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.InDelta(t, -0.05, loaded.Get(entity.State{4: entity.MarkA}, 0), 1e-12)
	})

	t.Run("Redis without host", func(t *testing.T) {
		_, _, err := openRepository(ctx, config.Storage{Driver: config.DriverRedis})

		require.ErrorIs(t, err, ErrAddrNotFound)
	})

	t.Run("Unknown driver", func(t *testing.T) {
		_, _, err := openRepository(ctx, config.Storage{Driver: "postgres"})

		require.ErrorIs(t, err, ErrUnknownStorage)
	})
}

func TestNewAgent(t *testing.T) {
	// Given: a small training budget and a file backend
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo, _, err := openRepository(context.Background(), config.Storage{
		Driver:   config.DriverFile,
		FilePath: filepath.Join(t.TempDir(), "q_table.gob"),
	})
	require.NoError(t, err)

	agent := newAgent(logger, config.Agent{
		Alpha:           0.5,
		Gamma:           0.9,
		Epsilon:         0.05,
		Episodes:        200,
		LearnedMoveRate: 0.1,
		ProgressWindow:  100,
	}, repo)

	// When: it is trained
	require.False(t, agent.Ready())
	require.NoError(t, agent.EnsureTrained(context.Background()))

	// Then: it answers on an empty board and the table was persisted
	move, err := agent.Decide(entity.State{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, move, 0)
	assert.LessOrEqual(t, move, 8)

	_, err = repo.Load(context.Background())
	require.NoError(t, err)
}
