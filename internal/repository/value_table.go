package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

// ValueTableRepository - persists one named value table. Load returns
// apperror.ErrPersistenceUnavailable when nothing was saved yet.
type ValueTableRepository interface {
	Save(ctx context.Context, table entity.ValueTable) error
	Load(ctx context.Context) (entity.ValueTable, error)
}

type redisValueTable struct {
	client *redis.Client
	key    string
}

func NewRedisValueTableRepository(client *redis.Client, name string) ValueTableRepository {
	return &redisValueTable{
		client: client,
		key:    "qtable:" + name,
	}
}

func (that *redisValueTable) Save(ctx context.Context, table entity.ValueTable) error {
	data, err := EncodeValueTable(table)
	if err != nil {
		return err
	}

	if err = that.client.Set(ctx, that.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set value table: %w", err)
	}

	return nil
}

func (that *redisValueTable) Load(ctx context.Context) (entity.ValueTable, error) {
	data, err := that.client.Get(ctx, that.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: key %s", apperror.ErrPersistenceUnavailable, that.key)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get value table: %w", err)
	}

	return DecodeValueTable(data)
}

type sqliteValueTable struct {
	conn *sql.DB
	name string
}

// NewSQLiteValueTableRepository - expects the value_tables schema created by storage.Storage.Init.
func NewSQLiteValueTableRepository(conn *sql.DB, name string) ValueTableRepository {
	return &sqliteValueTable{
		conn: conn,
		name: name,
	}
}

func (that *sqliteValueTable) Save(ctx context.Context, table entity.ValueTable) error {
	data, err := EncodeValueTable(table)
	if err != nil {
		return err
	}

	query := `INSERT INTO value_tables (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`

	if _, err = that.conn.ExecContext(ctx, query, that.name, data); err != nil {
		return fmt.Errorf("failed to save value table: %w", err)
	}

	return nil
}

func (that *sqliteValueTable) Load(ctx context.Context) (entity.ValueTable, error) {
	var data []byte

	query := `SELECT data FROM value_tables WHERE name = ?`

	err := that.conn.QueryRowContext(ctx, query, that.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: table %s", apperror.ErrPersistenceUnavailable, that.name)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load value table: %w", err)
	}

	return DecodeValueTable(data)
}

type fileValueTable struct {
	path string
}

func NewFileValueTableRepository(path string) ValueTableRepository {
	return &fileValueTable{path: path}
}

// Save - writes to a temporary file first so a crash never leaves a truncated table behind.
func (that *fileValueTable) Save(_ context.Context, table entity.ValueTable) error {
	data, err := EncodeValueTable(table)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(that.path), filepath.Base(that.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write value table: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err = os.Rename(tmp.Name(), that.path); err != nil {
		return fmt.Errorf("failed to replace value table file: %w", err)
	}

	return nil
}

func (that *fileValueTable) Load(_ context.Context) (entity.ValueTable, error) {
	data, err := os.ReadFile(that.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: file %s", apperror.ErrPersistenceUnavailable, that.path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read value table: %w", err)
	}

	return DecodeValueTable(data)
}
