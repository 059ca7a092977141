package usecase

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/rocketscienceinc/tictactoe-agent/internal/service"
	"github.com/stretchr/testify/mock"
)

type mockValueTableRepo struct {
	mock.Mock
}

func (that *mockValueTableRepo) Save(ctx context.Context, table entity.ValueTable) error {
	args := that.Called(ctx, table)
	return args.Error(0)
}

func (that *mockValueTableRepo) Load(ctx context.Context) (entity.ValueTable, error) {
	args := that.Called(ctx)

	table, _ := args.Get(0).(entity.ValueTable)

	return table, args.Error(1)
}

type mockTrainer struct {
	mock.Mock
}

func (that *mockTrainer) Train(ctx context.Context) (entity.ValueTable, service.TrainingStats, error) {
	args := that.Called(ctx)

	table, _ := args.Get(0).(entity.ValueTable)

	return table, args.Get(1).(service.TrainingStats), args.Error(2)
}

type mockDecider struct {
	mock.Mock
}

func (that *mockDecider) EnsureTrained(ctx context.Context) error {
	args := that.Called(ctx)
	return args.Error(0)
}

func (that *mockDecider) Decide(state entity.State) (int, error) {
	args := that.Called(state)
	return args.Int(0), args.Error(1)
}

// fixedRandom - Random returning preset values.
type fixedRandom struct {
	float float64
	intn  int
}

func (that fixedRandom) IntN(n int) int   { return that.intn % n }
func (that fixedRandom) Float64() float64 { return that.float }
