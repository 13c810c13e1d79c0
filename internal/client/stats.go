package client

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	minLatencyMicros = 1
	maxLatencyMicros = int64(5 * time.Minute / time.Microsecond)
	latencySigFigs   = 3
)

// LatencySummary is a point-in-time view of one command's latencies.
type LatencySummary struct {
	Count int64
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
	P50   time.Duration
	P99   time.Duration
}

type latencyStats struct {
	mu    sync.Mutex
	hists map[string]*hdrhistogram.Histogram
}

func newLatencyStats() *latencyStats {
	return &latencyStats{hists: make(map[string]*hdrhistogram.Histogram)}
}

func (s *latencyStats) record(name string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hists[name]
	if !ok {
		h = hdrhistogram.New(minLatencyMicros, maxLatencyMicros, latencySigFigs)
		s.hists[name] = h
	}
	us := d.Microseconds()
	if us < minLatencyMicros {
		us = minLatencyMicros
	}
	if us > maxLatencyMicros {
		us = maxLatencyMicros
	}
	_ = h.RecordValue(us)
}

func (s *latencyStats) snapshot() map[string]LatencySummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]LatencySummary, len(s.hists))
	for name, h := range s.hists {
		out[name] = Summarize(h, time.Microsecond)
	}
	return out
}

// Summarize reads a histogram whose values were recorded in unit.
func Summarize(h *hdrhistogram.Histogram, unit time.Duration) LatencySummary {
	return LatencySummary{
		Count: h.TotalCount(),
		Min:   time.Duration(h.Min()) * unit,
		Max:   time.Duration(h.Max()) * unit,
		Mean:  time.Duration(h.Mean() * float64(unit)),
		P50:   time.Duration(h.ValueAtQuantile(50)) * unit,
		P99:   time.Duration(h.ValueAtQuantile(99)) * unit,
	}
}
