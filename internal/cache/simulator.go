package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rpgo/goalsim/internal/calculation"
	"github.com/rpgo/goalsim/internal/domain"
)

// Simulator is the part of the engine that CachedSimulator wraps.
type Simulator interface {
	Simulate(ctx context.Context, input domain.SimulationInput) (*domain.SimulationOutput, error)
}

// CachedSimulator serves repeated seeded simulations from a Store. Inputs
// without a seed are never cached since their output is not reproducible.
type CachedSimulator struct {
	next   Simulator
	store  Store
	ttl    time.Duration
	salt   []byte
	Logger calculation.Logger
}

// NewCachedSimulator wraps next. salt is folded into every key; pass anything
// that changes the output for identical inputs, such as engine settings.
func NewCachedSimulator(next Simulator, store Store, ttl time.Duration, salt any) (*CachedSimulator, error) {
	saltBytes, err := json.Marshal(salt)
	if err != nil {
		return nil, fmt.Errorf("encoding cache salt: %w", err)
	}
	return &CachedSimulator{next: next, store: store, ttl: ttl, salt: saltBytes, Logger: calculation.NopLogger{}}, nil
}

// Key returns the cache key for input. The simulation start day is part of
// the key since deadline months and goal dates are counted from it; within a
// day only Timestamp and DurationMs of a cached output are stale.
func (c *CachedSimulator) Key(input domain.SimulationInput) (string, error) {
	payload, err := json.Marshal(input.Normalized())
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}
	d := xxhash.New()
	_, _ = d.Write(c.salt)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(calculation.Now().UTC().Format("2006-01-02"))
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(payload)
	return fmt.Sprintf("goalsim:%016x", d.Sum64()), nil
}

// Simulate returns a cached output when one exists for the same seeded input.
// Store failures are logged and fall through to a fresh simulation.
func (c *CachedSimulator) Simulate(ctx context.Context, input domain.SimulationInput) (*domain.SimulationOutput, error) {
	if input.RandomSeed == nil {
		return c.next.Simulate(ctx, input)
	}

	key, err := c.Key(input)
	if err != nil {
		return nil, err
	}

	if data, ok, err := c.store.Get(ctx, key); err != nil {
		c.Logger.Warnf("cache read failed for %s: %v", key, err)
	} else if ok {
		var out domain.SimulationOutput
		if err := json.Unmarshal(data, &out); err == nil {
			c.Logger.Debugf("cache hit %s", key)
			return &out, nil
		}
		c.Logger.Warnf("discarding undecodable cache entry %s", key)
	}

	out, err := c.next.Simulate(ctx, input)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(out)
	if err != nil {
		c.Logger.Warnf("cache encode failed for %s: %v", key, err)
		return out, nil
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.Logger.Warnf("cache write failed for %s: %v", key, err)
	}
	return out, nil
}
