package monitor

import (
	"sync"
	"sync/atomic"
	"time"
)

// Counter is a thread-safe counter metric
type Counter struct {
	value int64
	name  string
}

// NewCounter creates a new counter metric
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc increments the counter by 1
func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

// Get returns the current counter value
func (c *Counter) Get() int64 {
	return atomic.LoadInt64(&c.value)
}

// Name returns the counter name
func (c *Counter) Name() string {
	return c.name
}

// LatencyBuckets are the upper bounds used by Latency. Samples above the
// last bound fall into an overflow bucket.
var LatencyBuckets = []time.Duration{
	250 * time.Millisecond,
	time.Second,
	5 * time.Second,
	30 * time.Second,
}

// Latency tracks remote call durations: count, min, max, mean and a
// coarse histogram over LatencyBuckets.
type Latency struct {
	mu      sync.Mutex
	count   int64
	total   time.Duration
	min     time.Duration
	max     time.Duration
	buckets []int64
}

// NewLatency creates an empty latency tracker
func NewLatency() *Latency {
	return &Latency{
		buckets: make([]int64, len(LatencyBuckets)+1),
	}
}

// Record adds one sample
func (l *Latency) Record(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.count == 0 || d < l.min {
		l.min = d
	}
	if d > l.max {
		l.max = d
	}
	l.count++
	l.total += d
	l.buckets[bucketFor(d)]++
}

func bucketFor(d time.Duration) int {
	for i, bound := range LatencyBuckets {
		if d <= bound {
			return i
		}
	}
	return len(LatencyBuckets)
}

// Snapshot returns the current figures in milliseconds
func (l *Latency) Snapshot() LatencySnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := LatencySnapshot{
		Count:   l.count,
		MinMS:   l.min.Milliseconds(),
		MaxMS:   l.max.Milliseconds(),
		Buckets: make(map[string]int64, len(l.buckets)),
	}
	if l.count > 0 {
		snap.AvgMS = (l.total / time.Duration(l.count)).Milliseconds()
	}
	for i, n := range l.buckets {
		snap.Buckets[bucketLabel(i)] = n
	}
	return snap
}

func bucketLabel(i int) string {
	if i < len(LatencyBuckets) {
		return "le_" + LatencyBuckets[i].String()
	}
	return "gt_" + LatencyBuckets[len(LatencyBuckets)-1].String()
}

