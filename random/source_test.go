package random

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ge211/errs"
)

func TestBetweenStaysInRange(t *testing.T) {
	src, err := Between(-3, 3)
	require.NoError(t, err)

	seen := map[int]bool{}
	for range 1000 {
		v, err := src.Next()
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, -3)
		require.LessOrEqual(t, v, 3)
		seen[v] = true
	}
	assert.Len(t, seen, 7, "every value in an inclusive range appears")
}

func TestBetweenFloat(t *testing.T) {
	src, err := Between(0.5, 1.5)
	require.NoError(t, err)

	for range 1000 {
		v, err := src.Next()
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, 0.5)
		require.Less(t, v, 1.5)
	}
}

func TestBetweenSingleValue(t *testing.T) {
	src, err := Between[uint8](7, 7)
	require.NoError(t, err)
	v, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, uint8(7), v)
}

func TestBetweenFullRange(t *testing.T) {
	src, err := Between[int8](-128, 127)
	require.NoError(t, err)
	for range 100 {
		_, err := src.Next()
		require.NoError(t, err)
	}
}

func TestBoundsErrors(t *testing.T) {
	_, err := Between(5, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrRandomBounds))
	assert.True(t, errors.Is(err, errs.ErrRandomSource))
	assert.True(t, errors.Is(err, errs.ErrClientLogic))
	assert.Contains(t, err.Error(), "lower bound (5)")

	_, err = UpTo(0)
	assert.ErrorIs(t, err, errs.ErrRandomBounds)
	_, err = UpTo(-4)
	assert.ErrorIs(t, err, errs.ErrRandomBounds)

	_, err = WithProbability(1.5)
	assert.ErrorIs(t, err, errs.ErrRandomBounds)
	_, err = WithProbability(-0.1)
	assert.ErrorIs(t, err, errs.ErrRandomBounds)
}

func TestUpTo(t *testing.T) {
	src, err := UpTo(4)
	require.NoError(t, err)

	for range 500 {
		v, err := src.Next()
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 4)
	}
}

func TestUnsupportedOperations(t *testing.T) {
	unbounded := Unbounded[int]()
	_, err := unbounded.Next()
	assert.ErrorIs(t, err, errs.ErrRandomUnsupported)

	v, err := unbounded.NextBetween(10, 12)
	require.NoError(t, err)
	assert.True(t, v >= 10 && v <= 12)

	_, err = unbounded.NextBetween(3, 2)
	assert.ErrorIs(t, err, errs.ErrRandomBounds)

	bounded := MustBetween(0, 10)
	_, err = bounded.NextBetween(0, 1)
	assert.ErrorIs(t, err, errs.ErrRandomUnsupported)

	coin, err := WithProbability(0.5)
	require.NoError(t, err)
	_, err = coin.NextWithProbability(0.5)
	assert.ErrorIs(t, err, errs.ErrRandomUnsupported)

	_, err = UnboundedBool().Next()
	assert.ErrorIs(t, err, errs.ErrRandomUnsupported)
}

func TestProbabilityExtremes(t *testing.T) {
	never, err := WithProbability(0)
	require.NoError(t, err)
	always, err := WithProbability(1)
	require.NoError(t, err)

	for range 500 {
		v, err := never.Next()
		require.NoError(t, err)
		require.False(t, v)

		v, err = always.Next()
		require.NoError(t, err)
		require.True(t, v)
	}

	free := UnboundedBool()
	v, err := free.NextWithProbability(0)
	require.NoError(t, err)
	assert.False(t, v)
}

func TestStubCyclesAndIgnoresBounds(t *testing.T) {
	src := MustBetween(0, 10)
	require.NoError(t, src.StubWith(3, 99, -1))

	var got []int
	for range 7 {
		v, err := src.Next()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []int{3, 99, -1, 3, 99, -1, 3}, got)

	free := Unbounded[float64]()
	require.NoError(t, free.StubWith(0.25))
	v, err := free.NextBetween(5, 6)
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)

	coin := UnboundedBool()
	require.NoError(t, coin.StubWith(true, false))
	b, err := coin.NextWithProbability(0)
	require.NoError(t, err)
	assert.True(t, b)
	b, err = coin.Next()
	require.NoError(t, err)
	assert.False(t, b)
}

func TestEmptyStub(t *testing.T) {
	err := Unbounded[int]().StubWith()
	assert.ErrorIs(t, err, errs.ErrRandomEmptyStub)
	assert.ErrorIs(t, UnboundedBool().StubWith(), errs.ErrRandomEmptyStub)
}

func TestSeedIsDeterministic(t *testing.T) {
	draw := func() []int {
		Seed(42)
		src := MustBetween(0, 1_000_000)
		out := make([]int, 5)
		for i := range out {
			out[i], _ = src.Next()
		}
		return out
	}
	t.Cleanup(func() { Seed(0) })

	assert.Equal(t, draw(), draw())
}

func TestRandomLegacy(t *testing.T) {
	r := New()

	v, err := r.UpTo(3)
	require.NoError(t, err)
	assert.True(t, v >= 0 && v < 3)

	v, err = r.Between(4, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	_, err = r.Between(4, 3)
	assert.ErrorIs(t, err, errs.ErrRandomBounds)

	f, err := r.BetweenFloat(1, 2)
	require.NoError(t, err)
	assert.True(t, f >= 1 && f < 2)

	require.NoError(t, r.Stub(1, 0, 7))
	b, _ := r.RandomBool(0)
	assert.True(t, b)
	b, _ = r.RandomBool(1)
	assert.False(t, b)
	v, _ = r.UpTo(2)
	assert.Equal(t, 7, v)

	assert.ErrorIs(t, r.Stub(), errs.ErrRandomEmptyStub)
}

func TestRandomBetweenExtremes(t *testing.T) {
	r := New()
	for range 100 {
		_, err := r.Between(math.MinInt, math.MaxInt)
		require.NoError(t, err)

		v, err := r.Between(math.MaxInt-1, math.MaxInt)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, math.MaxInt-1)

		v, err = r.Between(math.MinInt, math.MinInt+1)
		require.NoError(t, err)
		assert.LessOrEqual(t, v, math.MinInt+1)

		v, err = r.Between(-2, 2)
		require.NoError(t, err)
		assert.True(t, v >= -2 && v <= 2)
	}
}
