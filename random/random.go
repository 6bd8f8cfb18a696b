package random

import (
	"math/rand/v2"

	"github.com/lixenwraith/ge211/errs"
)

// Random is the engine's shared convenience generator for ints and bools
// Games get one through engine.Base.Random; Source gives finer control
type Random struct {
	rng  *rand.Rand
	stub *stub[int]
}

// New creates a Random seeded from the package seed
func New() *Random {
	return &Random{rng: newGenerator()}
}

// UpTo returns an int in [0, limit)
func (r *Random) UpTo(limit int) (int, error) {
	if r.stub != nil {
		return r.stub.next(), nil
	}
	if limit <= 0 {
		return 0, &errs.RandomSourceError{
			Kind:    errs.ErrRandomBounds,
			Message: "Random.UpTo: invalid argument: limit must be positive.",
		}
	}
	return r.rng.IntN(limit), nil
}

// Between returns an int in [lo, hi]
func (r *Random) Between(lo, hi int) (int, error) {
	if r.stub != nil {
		return r.stub.next(), nil
	}
	if err := checkBounds("Between", lo, hi); err != nil {
		return 0, err
	}
	span := uint64(hi) - uint64(lo)
	if span == ^uint64(0) {
		return int(r.rng.Uint64()), nil
	}
	return int(uint64(lo) + r.rng.Uint64N(span+1)), nil
}

// BetweenFloat returns a float64 in [lo, hi)
func (r *Random) BetweenFloat(lo, hi float64) (float64, error) {
	if err := checkBounds("BetweenFloat", lo, hi); err != nil {
		return 0, err
	}
	return lo + r.rng.Float64()*(hi-lo), nil
}

// RandomBool returns true with probability p
func (r *Random) RandomBool(p float64) (bool, error) {
	if r.stub != nil {
		return r.stub.next() != 0, nil
	}
	if err := checkProbability("RandomBool", p); err != nil {
		return false, err
	}
	return p != 0 && r.rng.Float64() <= p, nil
}

// Stub replaces integer results with the given values, cycling
// RandomBool reports a nonzero stub value as true
func (r *Random) Stub(values ...int) error {
	st, err := newStub("Random", values)
	if err != nil {
		return err
	}
	r.stub = st
	return nil
}
