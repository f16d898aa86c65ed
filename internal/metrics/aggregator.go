// internal/metrics/aggregator.go

// Package metrics keeps in-process running statistics for search, reply and
// generation calls. Nothing is persisted; a restart starts from zero.
package metrics

import (
	"sort"
	"sync"
	"time"
)

// Aggregator collects and manages running statistics per operation. A nil
// *Aggregator ignores every sample.
type Aggregator struct {
	mutex   sync.Mutex
	metrics map[string]*OperationMetrics
	now     func() time.Time
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		metrics: make(map[string]*OperationMetrics),
		now:     time.Now,
	}
}

// Record folds one sample into the statistics of its operation.
func (a *Aggregator) Record(s Sample) {
	if a == nil {
		return
	}
	a.mutex.Lock()
	defer a.mutex.Unlock()

	opMetrics, exists := a.metrics[s.Operation]
	if !exists {
		opMetrics = &OperationMetrics{Operation: s.Operation}
		a.metrics[s.Operation] = opMetrics
	}
	opMetrics.LastUpdatedUTC = a.now().UTC()

	updateStats(&opMetrics.OverallStats, s)

	bucket := getBucket(s.QueryRunes)
	for i := range opMetrics.PerformanceBuckets {
		if opMetrics.PerformanceBuckets[i].Dimension == "query_runes" && opMetrics.PerformanceBuckets[i].Bucket == bucket {
			updateStats(&opMetrics.PerformanceBuckets[i].Stats, s)
			return
		}
	}
	newBucket := PerformanceBucket{Dimension: "query_runes", Bucket: bucket}
	updateStats(&newBucket.Stats, s)
	opMetrics.PerformanceBuckets = append(opMetrics.PerformanceBuckets, newBucket)
}

// Observe records the time since start under op.
func (a *Aggregator) Observe(op string, start time.Time, queryRunes, results int, failed bool) {
	if a == nil {
		return
	}
	a.Record(Sample{
		Operation:  op,
		Duration:   a.now().Sub(start),
		QueryRunes: queryRunes,
		Results:    results,
		Failed:     failed,
	})
}

// Snapshot returns a copy of all operations ordered by name.
func (a *Aggregator) Snapshot() []OperationMetrics {
	out := []OperationMetrics{}
	if a == nil {
		return out
	}
	a.mutex.Lock()
	defer a.mutex.Unlock()

	for _, m := range a.metrics {
		c := *m
		c.PerformanceBuckets = append([]PerformanceBucket(nil), m.PerformanceBuckets...)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Operation < out[j].Operation })
	return out
}

// updateStats updates the running statistics with a new sample.
func updateStats(stats *RunningAggregatedStats, s Sample) {
	stats.TotalRequests++
	if s.Failed {
		stats.Failures++
	}
	updateRunningStat(&stats.DurationMillis, float64(s.Duration)/float64(time.Millisecond))
	updateRunningStat(&stats.Results, float64(s.Results))
}

// updateRunningStat updates a single running statistic using Welford's online algorithm.
func updateRunningStat(rs *RunningStat, value float64) {
	rs.Count++
	if rs.Count == 1 {
		rs.Min = value
		rs.Max = value
	} else {
		if value < rs.Min {
			rs.Min = value
		}
		if value > rs.Max {
			rs.Max = value
		}
	}

	delta := value - rs.Mean
	rs.Mean += delta / float64(rs.Count)
	delta2 := value - rs.Mean
	rs.M2 += delta * delta2
	rs.refreshStdDev()
}

// getBucket determines the performance bucket for a query length in runes.
func getBucket(queryRunes int) string {
	switch {
	case queryRunes <= 8:
		return "0-8"
	case queryRunes <= 32:
		return "9-32"
	case queryRunes <= 128:
		return "33-128"
	default:
		return "129+"
	}
}
