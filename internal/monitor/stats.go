package monitor

import (
	"sync"
	"time"
)

// Stats counts analyses for the lifetime of the process. Nothing is persisted.
type Stats struct {
	started time.Time

	succeeded *Counter
	failed    *Counter
	latency   *Latency

	mu       sync.Mutex
	tiers    map[int]*Counter    // stars (0 = unknown) -> count
	failures map[string]*Counter // failure kind -> count
}

// StatsSnapshot is a point-in-time copy of Stats
type StatsSnapshot struct {
	Uptime    string           `json:"uptime"`
	Total     int64            `json:"total"`
	Succeeded int64            `json:"succeeded"`
	Failed    int64            `json:"failed"`
	Tiers     map[string]int64 `json:"tiers"`
	Failures  map[string]int64 `json:"failures"`
	Latency   LatencySnapshot  `json:"latency"`
}

// LatencySnapshot summarizes remote call durations
type LatencySnapshot struct {
	Count   int64            `json:"count"`
	MinMS   int64            `json:"min_ms"`
	AvgMS   int64            `json:"avg_ms"`
	MaxMS   int64            `json:"max_ms"`
	Buckets map[string]int64 `json:"buckets"`
}

// NewStats creates an empty recorder
func NewStats() *Stats {
	return &Stats{
		started:   time.Now(),
		succeeded: NewCounter("analyses_succeeded"),
		failed:    NewCounter("analyses_failed"),
		latency:   NewLatency(),
		tiers:     make(map[int]*Counter),
		failures:  make(map[string]*Counter),
	}
}

// Observe records one analysis. An empty failure means success with the
// given star rating. A zero elapsed time means no remote call was made.
func (s *Stats) Observe(stars int, failure string, elapsed time.Duration) {
	if elapsed > 0 {
		s.latency.Record(elapsed)
	}

	if failure != "" {
		s.failed.Inc()
		s.counter(s.failures, failure).Inc()
		return
	}

	s.succeeded.Inc()
	s.tierCounter(stars).Inc()
}

func (s *Stats) counter(m map[string]*Counter, key string) *Counter {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := m[key]
	if !ok {
		c = NewCounter(key)
		m[key] = c
	}
	return c
}

func (s *Stats) tierCounter(stars int) *Counter {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.tiers[stars]
	if !ok {
		c = NewCounter(tierKey(stars))
		s.tiers[stars] = c
	}
	return c
}

func tierKey(stars int) string {
	if stars < 1 || stars > 5 {
		return "unknown"
	}
	return string(rune('0'+stars)) + "_stars"
}

// Snapshot returns the current counts
func (s *Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Succeeded: s.succeeded.Get(),
		Failed:    s.failed.Get(),
		Tiers:     make(map[string]int64),
		Failures:  make(map[string]int64),
		Latency:   s.latency.Snapshot(),
	}
	snap.Total = snap.Succeeded + snap.Failed

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.tiers {
		snap.Tiers[c.Name()] = c.Get()
	}
	for _, c := range s.failures {
		snap.Failures[c.Name()] = c.Get()
	}
	return snap
}

