package random

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/ge211/errs"
)

// Integer is any built-in integer type
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Float is any built-in floating-point type
type Float interface {
	~float32 | ~float64
}

// Number is any type a Source can produce
type Number interface {
	Integer | Float
}

// Source produces random numbers of type T
//
// A bounded source (Between, UpTo) fixes its range at construction and is
// sampled with Next. An unbounded source takes the range on every call to
// NextBetween. Integer ranges are inclusive; float ranges are [lo, hi).
type Source[T Number] struct {
	rng     *rand.Rand
	bounded bool
	lo, hi  T
	stub    *stub[T]
}

// Between creates a bounded source producing values from lo to hi
func Between[T Number](lo, hi T) (*Source[T], error) {
	if err := checkBounds("Between", lo, hi); err != nil {
		return nil, err
	}
	return &Source[T]{rng: newGenerator(), bounded: true, lo: lo, hi: hi}, nil
}

// UpTo creates a bounded integer source producing values in [0, limit)
func UpTo[T Integer](limit T) (*Source[T], error) {
	if limit <= 0 {
		return nil, &errs.RandomSourceError{
			Kind: errs.ErrRandomBounds,
			Message: fmt.Sprintf("%s.UpTo: invalid argument: limit (%v) must be positive.",
				typeName[T](), limit),
		}
	}
	return &Source[T]{rng: newGenerator(), bounded: true, lo: 0, hi: limit - 1}, nil
}

// Unbounded creates a source whose range is given on each NextBetween call
func Unbounded[T Number]() *Source[T] {
	return &Source[T]{rng: newGenerator()}
}

// MustBetween is Between for constant arguments known to be valid
func MustBetween[T Number](lo, hi T) *Source[T] {
	s, err := Between(lo, hi)
	if err != nil {
		panic(err)
	}
	return s
}

// Next returns the next value from a bounded source
func (s *Source[T]) Next() (T, error) {
	if s.stub != nil {
		return s.stub.next(), nil
	}
	if !s.bounded {
		var zero T
		return zero, unsupported[T]("Next", false)
	}
	return s.sample(s.lo, s.hi), nil
}

// NextBetween returns a value in [lo, hi] from an unbounded source
func (s *Source[T]) NextBetween(lo, hi T) (T, error) {
	if s.stub != nil {
		return s.stub.next(), nil
	}
	var zero T
	if s.bounded {
		return zero, unsupported[T]("NextBetween", true)
	}
	if err := checkBounds("NextBetween", lo, hi); err != nil {
		return zero, err
	}
	return s.sample(lo, hi), nil
}

// StubWith replaces the generator with values replayed in order, cycling
// forever; bounds are ignored from then on
func (s *Source[T]) StubWith(values ...T) error {
	st, err := newStub(typeName[T](), values)
	if err != nil {
		return err
	}
	s.stub = st
	return nil
}

func (s *Source[T]) sample(lo, hi T) T {
	if isFloat[T]() {
		return lo + T(s.rng.Float64()*(float64(hi)-float64(lo)))
	}
	span := uint64(hi) - uint64(lo)
	if span == ^uint64(0) {
		return T(s.rng.Uint64())
	}
	return T(uint64(lo) + s.rng.Uint64N(span+1))
}

// BoolSource produces random booleans
type BoolSource struct {
	rng     *rand.Rand
	bounded bool
	p       float64
	stub    *stub[bool]
}

// WithProbability creates a source that is true with probability p in [0, 1]
func WithProbability(p float64) (*BoolSource, error) {
	if err := checkProbability("WithProbability", p); err != nil {
		return nil, err
	}
	return &BoolSource{rng: newGenerator(), bounded: true, p: p}, nil
}

// UnboundedBool creates a source whose probability is given on each call
func UnboundedBool() *BoolSource {
	return &BoolSource{rng: newGenerator()}
}

// Next returns the next value from a probability-bound source
func (s *BoolSource) Next() (bool, error) {
	if s.stub != nil {
		return s.stub.next(), nil
	}
	if !s.bounded {
		return false, unsupported[bool]("Next", false)
	}
	return s.flip(s.p), nil
}

// NextWithProbability returns true with probability p from an unbounded source
func (s *BoolSource) NextWithProbability(p float64) (bool, error) {
	if s.stub != nil {
		return s.stub.next(), nil
	}
	if s.bounded {
		return false, unsupported[bool]("NextWithProbability", true)
	}
	if err := checkProbability("NextWithProbability", p); err != nil {
		return false, err
	}
	return s.flip(p), nil
}

// StubWith replaces the generator with values replayed in order, cycling
func (s *BoolSource) StubWith(values ...bool) error {
	st, err := newStub("BoolSource", values)
	if err != nil {
		return err
	}
	s.stub = st
	return nil
}

func (s *BoolSource) flip(p float64) bool {
	if p == 0 {
		return false
	}
	return s.rng.Float64() <= p
}

type stub[T any] struct {
	values []T
	pos    int
}

func newStub[T any](owner string, values []T) (*stub[T], error) {
	if len(values) == 0 {
		return nil, &errs.RandomSourceError{
			Kind:    errs.ErrRandomEmptyStub,
			Message: owner + ".StubWith: invalid argument: container must be non-empty",
		}
	}
	return &stub[T]{values: append([]T(nil), values...)}, nil
}

func (s *stub[T]) next() T {
	v := s.values[s.pos]
	s.pos = (s.pos + 1) % len(s.values)
	return v
}

func checkBounds[T Number](op string, lo, hi T) error {
	if lo <= hi {
		return nil
	}
	return &errs.RandomSourceError{
		Kind: errs.ErrRandomBounds,
		Message: fmt.Sprintf("%s.%s: invalid arguments: lower bound (%v) must be less than or equal to upper bound (%v).",
			typeName[T](), op, lo, hi),
	}
}

func checkProbability(op string, p float64) error {
	if p >= 0 && p <= 1 {
		return nil
	}
	return &errs.RandomSourceError{
		Kind: errs.ErrRandomBounds,
		Message: fmt.Sprintf("BoolSource.%s: invalid argument: probability (%v) must be between 0.0 and 1.0, inclusive.",
			op, p),
	}
}

func unsupported[T any](op string, hasBounds bool) error {
	name := typeName[T]()
	param := "bounds"
	fix := "NextBetween to pass bounds on each call"
	ctor := "Unbounded"
	if _, ok := any(*new(T)).(bool); ok {
		name = "BoolSource"
		param = "probability"
		fix = "NextWithProbability to pass a probability on each call"
		ctor = "UnboundedBool"
	}
	var msg string
	if hasBounds {
		msg = fmt.Sprintf("%s.%s: cannot be used on a source constructed with pre-specified %s. Call Next instead, or construct the source with %s.",
			name, op, param, ctor)
	} else {
		msg = fmt.Sprintf("%s.%s: cannot be used on a source constructed without pre-specified %s. Call %s instead.",
			name, op, param, fix)
	}
	return &errs.RandomSourceError{Kind: errs.ErrRandomUnsupported, Message: msg}
}

func typeName[T any]() string {
	return fmt.Sprintf("Source[%T]", *new(T))
}

func isFloat[T Number]() bool {
	return T(1)/T(2) != 0
}
