package pinger

import (
	"slices"
	"sync"
	"time"
)

const (
	// SuccessLatencyBufferSize is the number of successful ping latencies to track
	SuccessLatencyBufferSize = 100

	// ErrorLatencyBufferSize is the number of error ping latencies to track
	ErrorLatencyBufferSize = 10
)

// LatencyBuffer is a ring buffer of the most recent latencies
type LatencyBuffer struct {
	mu       sync.RWMutex
	buffer   []time.Duration
	capacity int
	next     int
}

// NewLatencyBuffer creates a new latency buffer with the specified capacity
func NewLatencyBuffer(capacity int) *LatencyBuffer {
	return &LatencyBuffer{
		buffer:   make([]time.Duration, 0, capacity),
		capacity: capacity,
	}
}

// Add adds a duration, overwriting the oldest one when full
func (lb *LatencyBuffer) Add(d time.Duration) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	if len(lb.buffer) < lb.capacity {
		lb.buffer = append(lb.buffer, d)

		return
	}

	lb.buffer[lb.next] = d
	lb.next = (lb.next + 1) % lb.capacity
}

// GetAll returns a copy of the buffered durations, oldest first
func (lb *LatencyBuffer) GetAll() []time.Duration {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	if len(lb.buffer) == 0 {
		return nil
	}

	result := make([]time.Duration, 0, len(lb.buffer))
	result = append(result, lb.buffer[lb.next:]...)
	result = append(result, lb.buffer[:lb.next]...)

	return result
}

// Len returns the number of durations in the buffer
func (lb *LatencyBuffer) Len() int {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	return len(lb.buffer)
}

// Stats tracks raw results of a single pinger
type Stats struct {
	Name             string
	mu               sync.RWMutex
	lastRun          time.Time
	lastError        error
	lastErrorAt      time.Time
	successLatencies *LatencyBuffer
	errorLatencies   *LatencyBuffer
}

// NewPingerStats creates a new Stats instance
func NewPingerStats(name string) *Stats {
	return &Stats{
		Name:             name,
		successLatencies: NewLatencyBuffer(SuccessLatencyBufferSize),
		errorLatencies:   NewLatencyBuffer(ErrorLatencyBufferSize),
	}
}

func (st *Stats) record(at time.Time, latency time.Duration, err error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.lastRun = at
	st.lastError = err

	if err != nil {
		st.lastErrorAt = at
		st.errorLatencies.Add(latency)

		return
	}

	st.successLatencies.Add(latency)
}

// LatencyMetrics contains calculated latency statistics
type LatencyMetrics struct {
	Count   int           `json:"count"`
	Median  time.Duration `json:"median"`
	Average time.Duration `json:"average"`
	P90     time.Duration `json:"p90"`
	P99     time.Duration `json:"p99"`
}

// Statistics is a point-in-time view of a pinger
type Statistics struct {
	IsReady          bool           `json:"ready"`
	IsHealthy        bool           `json:"healthy"`
	LastRun          time.Time      `json:"lastRun"`
	LastError        string         `json:"lastError,omitempty"`
	LastErrorAt      *time.Time     `json:"lastErrorAt,omitempty"`
	SuccessLatencies LatencyMetrics `json:"successLatencies"`
	ErrorLatencies   LatencyMetrics `json:"errorLatencies"`
}

// CalculatePercentile returns the nearest-rank percentile of sorted latencies
func CalculatePercentile(sorted []time.Duration, percentile float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)-1)*percentile/100 + 0.5)
	index = min(max(index, 0), len(sorted)-1)

	return sorted[index]
}

// CalculateMedian calculates the median of sorted latencies
func CalculateMedian(sorted []time.Duration) time.Duration {
	n := len(sorted)
	if n == 0 {
		return 0
	}

	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return sorted[n/2]
}

// CalculateAverage calculates the average value from a slice of durations
func CalculateAverage(latencies []time.Duration) time.Duration {
	if len(latencies) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range latencies {
		sum += d
	}

	return sum / time.Duration(len(latencies))
}

func calculateLatencyMetrics(latencies []time.Duration) LatencyMetrics {
	if len(latencies) == 0 {
		return LatencyMetrics{}
	}

	sorted := slices.Clone(latencies)
	slices.Sort(sorted)

	return LatencyMetrics{
		Count:   len(sorted),
		Median:  CalculateMedian(sorted),
		Average: CalculateAverage(sorted),
		P90:     CalculatePercentile(sorted, 90),
		P99:     CalculatePercentile(sorted, 99),
	}
}

// getStatistics computes statistics of a pinger. A pinger that is not critical for
// readiness or health never marks the service unready or unhealthy.
func getStatistics(stats *Stats, info *pingerInfo) *Statistics {
	stats.mu.RLock()
	defer stats.mu.RUnlock()

	out := &Statistics{
		IsReady:          !info.readyCritical || stats.lastError == nil,
		IsHealthy:        !info.healthCritical || stats.lastError == nil,
		LastRun:          stats.lastRun,
		SuccessLatencies: calculateLatencyMetrics(stats.successLatencies.GetAll()),
		ErrorLatencies:   calculateLatencyMetrics(stats.errorLatencies.GetAll()),
	}

	if stats.lastError != nil {
		out.LastError = stats.lastError.Error()
	}

	if !stats.lastErrorAt.IsZero() {
		lastErrorAt := stats.lastErrorAt
		out.LastErrorAt = &lastErrorAt
	}

	return out
}
