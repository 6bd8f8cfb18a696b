// Package session tracks whether the engine is running and owns the
// service hub that brings host subsystems up and down in dependency order.
package session

import (
	"sync/atomic"

	"github.com/lixenwraith/ge211/errs"
)

var active atomic.Int32

// Begin marks a session active and returns the function that ends it
// Sessions nest; the engine is active while any session is open
func Begin() (end func()) {
	active.Add(1)
	var once atomic.Bool
	return func() {
		if once.CompareAndSwap(false, true) {
			active.Add(-1)
		}
	}
}

// Active reports whether a session is open
func Active() bool {
	return active.Load() > 0
}

// Check returns a SessionNeededError naming action when no session is open
func Check(action string) error {
	if !Active() {
		return errs.SessionNeeded(action)
	}
	return nil
}
