package sources

import (
	"context"
	"sync"
	"time"

	"github.com/kunwoo0421/GovernmentSupportProject/app/metrics"
	"github.com/kunwoo0421/GovernmentSupportProject/app/notice"
)

// Aggregator fans out one goroutine per registered adapter and
// concatenates the results in registration order, so the combined list is
// deterministic regardless of which source answers first. Ordering of the
// final view is imposed later by the query engine.
type Aggregator struct {
	adapters []Adapter
}

func NewAggregator(adapters ...Adapter) *Aggregator {
	return &Aggregator{adapters: adapters}
}

// Run fetches from every adapter concurrently and returns the concatenated
// results. Wall-clock cost is the slowest single adapter; a failing adapter
// contributes an empty slice, never an error.
func (a *Aggregator) Run(ctx context.Context) []notice.Notice {
	results := make([][]notice.Notice, len(a.adapters))

	var wg sync.WaitGroup
	for i, adapter := range a.adapters {
		wg.Add(1)
		go func(i int, adapter Adapter) {
			defer wg.Done()
			start := time.Now()
			fetched := adapter.Fetch(ctx)
			metrics.FetchDuration.WithLabelValues(adapter.Name()).Observe(time.Since(start).Seconds())
			metrics.FetchedNotices.WithLabelValues(adapter.Name()).Add(float64(len(fetched)))
			results[i] = fetched
		}(i, adapter)
	}
	wg.Wait()

	var combined []notice.Notice
	for _, result := range results {
		combined = append(combined, result...)
	}
	return combined
}
