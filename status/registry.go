// Package status holds lock-free counters and gauges published by the
// engine loop and the mixer.
package status

import (
	"log/slog"
	"sync/atomic"
)

// Metric keys published by the engine and mixer
const (
	FrameCount     = "engine.frames"
	FrameRate      = "engine.fps"
	LoadPercent    = "engine.load_percent"
	EventsDropped  = "input.events_dropped"
	EffectsPlayed  = "mixer.effects_played"
	EffectsDropped = "mixer.effects_dropped"
	MusicState     = "mixer.music_state"
	ChannelsInUse  = "mixer.channels_in_use"
)

// PeakSuffix marks a gauge's peak in snapshots and logs
const PeakSuffix = ".peak"

// Registry groups metrics by value type
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Gauges *MetricMap[Gauge]
	Labels *MetricMap[Label]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Gauges: NewMetricMap[Gauge](),
		Labels: NewMetricMap[Label](),
	}
}

// Count returns the number of metrics across all types
func (r *Registry) Count() int {
	return r.Ints.Count() + r.Gauges.Count() + r.Labels.Count()
}

// Snapshot copies every metric into a map, with each gauge's peak under
// its key plus PeakSuffix
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.Count())
	for k, v := range r.Ints.All() {
		out[k] = v.Load()
	}
	for k, v := range r.Gauges.All() {
		out[k] = v.Load()
		out[k+PeakSuffix] = v.Peak()
	}
	for k, v := range r.Labels.All() {
		out[k] = v.Load()
	}
	return out
}

// LogValue renders the registry as a slog group in key order per type
func (r *Registry) LogValue() slog.Value {
	var attrs []slog.Attr
	for k, v := range r.Ints.All() {
		attrs = append(attrs, slog.Int64(k, v.Load()))
	}
	for k, v := range r.Gauges.All() {
		attrs = append(attrs, slog.Float64(k, v.Load()), slog.Float64(k+PeakSuffix, v.Peak()))
	}
	for k, v := range r.Labels.All() {
		attrs = append(attrs, slog.String(k, v.Load()))
	}
	return slog.GroupValue(attrs...)
}
