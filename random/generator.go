// Package random provides random number sources for games, including
// stubbing so that tests can script the "random" values a game sees.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

var (
	seedMu sync.Mutex
	seeder *rand.Rand
)

// Seed makes every source created afterwards deterministic
// A seed of 0 restores time-based seeding
func Seed(seed uint64) {
	seedMu.Lock()
	defer seedMu.Unlock()
	if seed == 0 {
		seeder = nil
		return
	}
	seeder = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// newGenerator returns an independent generator for one source
func newGenerator() *rand.Rand {
	seedMu.Lock()
	defer seedMu.Unlock()
	if seeder != nil {
		return rand.New(rand.NewPCG(seeder.Uint64(), seeder.Uint64()))
	}
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, rand.Uint64()))
}
