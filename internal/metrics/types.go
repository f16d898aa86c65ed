// internal/metrics/types.go
package metrics

import (
	"math"
	"time"
)

// OperationMetrics is the aggregated data for one operation, e.g. "search".
type OperationMetrics struct {
	Operation          string                 `json:"operation"`
	LastUpdatedUTC     time.Time              `json:"last_updated_utc"`
	OverallStats       RunningAggregatedStats `json:"overall_stats"`
	PerformanceBuckets []PerformanceBucket    `json:"performance_buckets"`
}

// PerformanceBucket holds aggregated stats for a specific dimension, like query length.
type PerformanceBucket struct {
	Dimension string                 `json:"dimension"`
	Bucket    string                 `json:"bucket"`
	Stats     RunningAggregatedStats `json:"stats"`
}

// RunningAggregatedStats stores the running statistical values for a set of samples.
// It uses Welford's online algorithm for calculating mean and standard deviation.
type RunningAggregatedStats struct {
	TotalRequests int64 `json:"total_requests"`
	Failures      int64 `json:"failures"`

	DurationMillis RunningStat `json:"duration_ms"`
	Results        RunningStat `json:"results"`
}

// RunningStat holds the necessary values for online calculation of mean, variance, and stddev.
type RunningStat struct {
	Count  int64   `json:"-"`
	Mean   float64 `json:"mean"`
	M2     float64 `json:"-"` // Sum of squares of differences from the current mean
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stddev"`
}

// Sample is one observed call.
type Sample struct {
	Operation  string
	Duration   time.Duration
	QueryRunes int
	Results    int
	Failed     bool
}

// variance returns the sample variance, zero below two observations.
func (rs RunningStat) variance() float64 {
	if rs.Count < 2 {
		return 0
	}
	return rs.M2 / float64(rs.Count-1)
}

func (rs *RunningStat) refreshStdDev() {
	rs.StdDev = math.Sqrt(rs.variance())
}
