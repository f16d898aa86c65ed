// internal/metrics/aggregator_test.go
package metrics

import (
	"math"
	"sync"
	"testing"
	"time"
)

func TestRecordRunningStats(t *testing.T) {
	agg := NewAggregator()
	for _, ms := range []int{10, 20, 30} {
		agg.Record(Sample{Operation: "search", Duration: time.Duration(ms) * time.Millisecond, QueryRunes: 5, Results: 2})
	}
	agg.Record(Sample{Operation: "search", Duration: 40 * time.Millisecond, QueryRunes: 50, Failed: true})

	snap := agg.Snapshot()
	if len(snap) != 1 || snap[0].Operation != "search" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	overall := snap[0].OverallStats
	if overall.TotalRequests != 4 || overall.Failures != 1 {
		t.Fatalf("counts = %d/%d, want 4/1", overall.TotalRequests, overall.Failures)
	}
	d := overall.DurationMillis
	if d.Mean != 25 || d.Min != 10 || d.Max != 40 {
		t.Fatalf("duration stats = %+v", d)
	}
	if want := math.Sqrt(500.0 / 3.0); math.Abs(d.StdDev-want) > 1e-9 {
		t.Fatalf("stddev = %v, want %v", d.StdDev, want)
	}
	if len(snap[0].PerformanceBuckets) != 2 {
		t.Fatalf("expected two query length buckets, got %+v", snap[0].PerformanceBuckets)
	}
	if b := snap[0].PerformanceBuckets[0]; b.Bucket != "0-8" || b.Stats.TotalRequests != 3 {
		t.Fatalf("unexpected first bucket: %+v", b)
	}
}

func TestSnapshotOrderAndCopy(t *testing.T) {
	agg := NewAggregator()
	agg.Record(Sample{Operation: "reply"})
	agg.Record(Sample{Operation: "generate"})

	snap := agg.Snapshot()
	if snap[0].Operation != "generate" || snap[1].Operation != "reply" {
		t.Fatalf("unexpected order: %+v", snap)
	}
	snap[0].PerformanceBuckets[0].Bucket = "changed"
	if agg.Snapshot()[0].PerformanceBuckets[0].Bucket == "changed" {
		t.Fatal("snapshot shares bucket storage with the aggregator")
	}
}

func TestNilAggregator(t *testing.T) {
	var agg *Aggregator
	agg.Record(Sample{Operation: "search"})
	agg.Observe("search", time.Now(), 1, 1, false)
	if got := agg.Snapshot(); got == nil || len(got) != 0 {
		t.Fatalf("nil aggregator snapshot = %#v", got)
	}
}

func TestObserveConcurrent(t *testing.T) {
	agg := NewAggregator()
	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			agg.Observe("search", start, 4, 1, false)
		}()
	}
	wg.Wait()
	if got := agg.Snapshot()[0].OverallStats.TotalRequests; got != 50 {
		t.Fatalf("TotalRequests = %d, want 50", got)
	}
}

func TestGetBucket(t *testing.T) {
	cases := map[int]string{0: "0-8", 8: "0-8", 9: "9-32", 128: "33-128", 500: "129+"}
	for in, want := range cases {
		if got := getBucket(in); got != want {
			t.Errorf("getBucket(%d) = %q, want %q", in, got, want)
		}
	}
}
