package status

import (
	"math"
	"sync/atomic"
)

// Gauge is a float64 reading that also remembers its highest value
// The zero value reads 0 with a peak of 0
type Gauge struct {
	bits atomic.Uint64
	peak atomic.Uint64
}

// Store sets the reading and raises the peak if v exceeds it
func (g *Gauge) Store(v float64) {
	g.bits.Store(math.Float64bits(v))
	for {
		old := g.peak.Load()
		if v <= math.Float64frombits(old) {
			return
		}
		if g.peak.CompareAndSwap(old, math.Float64bits(v)) {
			return
		}
	}
}

func (g *Gauge) Load() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Peak is the highest value stored since the last ResetPeak
func (g *Gauge) Peak() float64 {
	return math.Float64frombits(g.peak.Load())
}

// ResetPeak lowers the peak to the current reading
func (g *Gauge) ResetPeak() {
	g.peak.Store(g.bits.Load())
}
