package calculation

import (
	"math/rand/v2"
	"time"
)

// nowFunc returns the simulation start time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the clock used as the simulation start (use only in tests).
// Passing nil restores time.Now.
func SetNowFunc(f func() time.Time) {
	if f == nil {
		f = time.Now
	}
	nowFunc = f
}

// Now returns the simulation start time the engine would use for a run
// started at this moment.
func Now() time.Time {
	return nowFunc()
}

// seedFunc supplies the master seed when the input carries none. The
// math/rand/v2 top-level generator is seeded from OS entropy.
var seedFunc = rand.Int64

// SetSeedFunc overrides the seed provider (use only in tests). Passing nil
// restores the entropy-based seed.
func SetSeedFunc(f func() int64) {
	if f == nil {
		f = rand.Int64
	}
	seedFunc = f
}
