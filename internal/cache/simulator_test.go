package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpgo/goalsim/internal/calculation"
	"github.com/rpgo/goalsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSimulator struct {
	calls int
	err   error
}

func (c *countingSimulator) Simulate(_ context.Context, input domain.SimulationInput) (*domain.SimulationOutput, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	out := &domain.SimulationOutput{
		CurrentPath: domain.PathResult{SavingsRate: input.CurrentSavingsRate},
		Metadata:    domain.SimulationMetadata{Iterations: c.calls},
	}
	if input.RandomSeed != nil {
		out.Metadata.Seed = *input.RandomSeed
	}
	return out, nil
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store down")
}

func seededInput(seed int64) domain.SimulationInput {
	return domain.SimulationInput{
		CurrentSavingsRate: decimal.NewFromFloat(0.1),
		MonthlyIncome:      decimal.NewFromInt(5000),
		Goals: []domain.SimulationGoal{{
			Amount:   decimal.NewFromInt(10000),
			Deadline: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
		RandomSeed: &seed,
	}
}

func TestCachedSimulator_HitsOnRepeat(t *testing.T) {
	inner := &countingSimulator{}
	cached, err := NewCachedSimulator(inner, NewMemoryStore(), time.Minute, calculation.DefaultSettings())
	require.NoError(t, err)

	first, err := cached.Simulate(context.Background(), seededInput(7))
	require.NoError(t, err)
	second, err := cached.Simulate(context.Background(), seededInput(7))
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first.Metadata, second.Metadata)
	assert.True(t, second.CurrentPath.SavingsRate.Equal(decimal.NewFromFloat(0.1)))
}

func TestCachedSimulator_DifferentSeedMisses(t *testing.T) {
	inner := &countingSimulator{}
	cached, err := NewCachedSimulator(inner, NewMemoryStore(), time.Minute, nil)
	require.NoError(t, err)

	_, err = cached.Simulate(context.Background(), seededInput(1))
	require.NoError(t, err)
	_, err = cached.Simulate(context.Background(), seededInput(2))
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedSimulator_UnseededBypassesCache(t *testing.T) {
	inner := &countingSimulator{}
	store := NewMemoryStore()
	cached, err := NewCachedSimulator(inner, store, time.Minute, nil)
	require.NoError(t, err)

	in := seededInput(1)
	in.RandomSeed = nil
	for i := 0; i < 2; i++ {
		_, err = cached.Simulate(context.Background(), in)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, inner.calls)
	assert.Zero(t, store.Len())
}

func TestCachedSimulator_SaltSeparatesKeys(t *testing.T) {
	a, err := NewCachedSimulator(&countingSimulator{}, NewMemoryStore(), time.Minute, map[string]int{"iterations": 100})
	require.NoError(t, err)
	b, err := NewCachedSimulator(&countingSimulator{}, NewMemoryStore(), time.Minute, map[string]int{"iterations": 200})
	require.NoError(t, err)

	keyA, err := a.Key(seededInput(1))
	require.NoError(t, err)
	keyB, err := b.Key(seededInput(1))
	require.NoError(t, err)
	again, err := a.Key(seededInput(1))
	require.NoError(t, err)

	assert.NotEqual(t, keyA, keyB)
	assert.Equal(t, keyA, again)
	assert.Regexp(t, `^goalsim:[0-9a-f]{16}$`, keyA)
}

func TestCachedSimulator_StartDaySeparatesKeys(t *testing.T) {
	now := time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC)
	calculation.SetNowFunc(func() time.Time { return now })
	t.Cleanup(func() { calculation.SetNowFunc(nil) })

	inner := &countingSimulator{}
	cached, err := NewCachedSimulator(inner, NewMemoryStore(), time.Hour, nil)
	require.NoError(t, err)

	morning, err := cached.Key(seededInput(5))
	require.NoError(t, err)
	now = now.Add(10 * time.Hour)
	evening, err := cached.Key(seededInput(5))
	require.NoError(t, err)
	assert.Equal(t, morning, evening)

	now = time.Date(2025, 2, 1, 0, 30, 0, 0, time.UTC)
	nextMonth, err := cached.Key(seededInput(5))
	require.NoError(t, err)
	assert.NotEqual(t, morning, nextMonth)

	_, err = cached.Simulate(context.Background(), seededInput(5))
	require.NoError(t, err)
	now = time.Date(2025, 2, 2, 0, 30, 0, 0, time.UTC)
	_, err = cached.Simulate(context.Background(), seededInput(5))
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "a new start day must not reuse yesterday's output")
}

func TestCachedSimulator_LegacyGoalSharesKey(t *testing.T) {
	cached, err := NewCachedSimulator(&countingSimulator{}, NewMemoryStore(), time.Minute, nil)
	require.NoError(t, err)

	list := seededInput(3)
	legacy := seededInput(3)
	goal := legacy.Goals[0]
	legacy.Goals = nil
	legacy.Goal = &goal

	keyList, err := cached.Key(list)
	require.NoError(t, err)
	keyLegacy, err := cached.Key(legacy)
	require.NoError(t, err)
	assert.Equal(t, keyList, keyLegacy)
}

func TestCachedSimulator_StoreFailureFallsThrough(t *testing.T) {
	inner := &countingSimulator{}
	cached, err := NewCachedSimulator(inner, failingStore{}, time.Minute, nil)
	require.NoError(t, err)

	out, err := cached.Simulate(context.Background(), seededInput(1))
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedSimulator_ErrorsAreNotCached(t *testing.T) {
	inner := &countingSimulator{err: errors.New("boom")}
	store := NewMemoryStore()
	cached, err := NewCachedSimulator(inner, store, time.Minute, nil)
	require.NoError(t, err)

	_, err = cached.Simulate(context.Background(), seededInput(1))
	assert.EqualError(t, err, "boom")
	assert.Zero(t, store.Len())
}
