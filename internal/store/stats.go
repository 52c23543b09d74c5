package store

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp time.Time
	duration  time.Duration
}

// StatsSnapshot is a point-in-time aggregate of catalog load latencies.
type StatsSnapshot struct {
	Count int     `json:"count" yaml:"count"`
	MinMs float64 `json:"min_ms" yaml:"min_ms"`
	MaxMs float64 `json:"max_ms" yaml:"max_ms"`
	AvgMs float64 `json:"avg_ms" yaml:"avg_ms"`
	P50Ms float64 `json:"p50_ms" yaml:"p50_ms"`
	P95Ms float64 `json:"p95_ms" yaml:"p95_ms"`
	P99Ms float64 `json:"p99_ms" yaml:"p99_ms"`
}

// LoadStats tracks recent load durations within a rolling window.
type LoadStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewLoadStats(maxAge time.Duration) *LoadStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &LoadStats{
		samples: make([]sample, 0, 64),
		maxAge:  maxAge,
	}
}

func (s *LoadStats) Record(d time.Duration) {
	if d < 0 {
		d = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp: now,
		duration:  d,
	})
}

func (s *LoadStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	values := make([]time.Duration, 0, len(s.samples))
	var sum time.Duration
	for _, sm := range s.samples {
		values = append(values, sm.duration)
		sum += sm.duration
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return StatsSnapshot{
		Count: len(values),
		MinMs: ms(values[0]),
		MaxMs: ms(values[len(values)-1]),
		AvgMs: ms(sum) / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

func (s *LoadStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// percentile interpolates linearly between the two nearest ranks and
// returns milliseconds.
func percentile(sorted []time.Duration, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return ms(sorted[0])
	}
	if pct >= 100 {
		return ms(sorted[len(sorted)-1])
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return ms(sorted[lower])
	}
	weight := index - float64(lower)
	lo := ms(sorted[lower])
	hi := ms(sorted[upper])
	return lo + ((hi - lo) * weight)
}
