package reviews

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/efren-tilemart/judgeme-proxy/pkg/upstream"
)

// countingPages is a concurrency-safe page source for service tests.
type countingPages struct {
	total   int64 // dataset size
	calls   atomic.Int64
	runs    atomic.Int64 // page-1 requests, i.e. pagination runs started
	failing atomic.Bool
	delay   time.Duration
}

func (f *countingPages) FetchPage(ctx context.Context, page int) ([]RawReview, error) {
	f.calls.Add(1)
	if page == 1 {
		f.runs.Add(1)
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.failing.Load() {
		return nil, upstream.HTTPError("reviews", 500, "boom")
	}

	start := (page - 1) * 100
	end := start + 100
	if int64(end) > f.total {
		end = int(f.total)
	}
	if start > end {
		start = end
	}

	records := make([]RawReview, 0, end-start)
	for i := start; i < end; i++ {
		records = append(records, RawReview{ID: int64(i + 1), Rating: 5, Published: true})
	}
	return records, nil
}

func newTestService(pages *countingPages, ttl time.Duration) *Service {
	fetcher := NewFetcher(pages, FetcherConfig{PerPage: 100, MaxPages: 100, PageTimeout: time.Second})
	return NewService(fetcher, ttl)
}

func TestService_FreshSnapshotSkipsUpstream(t *testing.T) {
	pages := &countingPages{total: 150}
	service := newTestService(pages, 24*time.Hour)
	ctx := context.Background()

	first, err := service.Fetch(ctx)
	if err != nil {
		t.Fatalf("First fetch failed: %v", err)
	}
	callsAfterRefresh := pages.calls.Load()

	for i := 0; i < 5; i++ {
		again, err := service.Fetch(ctx)
		if err != nil {
			t.Fatalf("Cached fetch failed: %v", err)
		}
		if len(again) != len(first) {
			t.Errorf("Cached fetch returned %d reviews, want %d", len(again), len(first))
		}
	}

	if pages.calls.Load() != callsAfterRefresh {
		t.Errorf("Fresh snapshot made %d extra upstream calls, want 0",
			pages.calls.Load()-callsAfterRefresh)
	}
}

func TestService_ConcurrentMissesCoalesce(t *testing.T) {
	pages := &countingPages{total: 150, delay: 20 * time.Millisecond}
	service := newTestService(pages, 24*time.Hour)

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Fetch(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("Caller %d failed: %v", i, err)
		}
	}
	if runs := pages.runs.Load(); runs != 1 {
		t.Errorf("Concurrent misses triggered %d pagination runs, want 1", runs)
	}
}

func TestService_StaleSnapshotRefreshes(t *testing.T) {
	pages := &countingPages{total: 50}
	service := newTestService(pages, 30*time.Millisecond)
	ctx := context.Background()

	if _, err := service.Fetch(ctx); err != nil {
		t.Fatalf("First fetch failed: %v", err)
	}
	time.Sleep(60 * time.Millisecond)

	if _, err := service.Fetch(ctx); err != nil {
		t.Fatalf("Post-expiry fetch failed: %v", err)
	}
	if runs := pages.runs.Load(); runs != 2 {
		t.Errorf("Pagination runs = %d, want 2 (initial + post-expiry)", runs)
	}
}

func TestService_ServesStaleOnRefreshFailure(t *testing.T) {
	pages := &countingPages{total: 50}
	service := newTestService(pages, 30*time.Millisecond)
	ctx := context.Background()

	first, err := service.Fetch(ctx)
	if err != nil {
		t.Fatalf("First fetch failed: %v", err)
	}

	time.Sleep(60 * time.Millisecond)
	pages.failing.Store(true)

	stale, err := service.Fetch(ctx)
	if err != nil {
		t.Fatalf("Expected stale fallback, got error: %v", err)
	}
	if len(stale) != len(first) {
		t.Errorf("Stale dataset = %d reviews, want %d", len(stale), len(first))
	}
}

func TestService_SurfacesFailureWithoutSnapshot(t *testing.T) {
	pages := &countingPages{total: 50}
	pages.failing.Store(true)
	service := newTestService(pages, 24*time.Hour)

	_, err := service.Fetch(context.Background())
	if err == nil {
		t.Fatal("Expected error with no snapshot to fall back on")
	}
	if upstream.KindOf(err) != upstream.KindHTTP {
		t.Errorf("KindOf() = %q, want %q", upstream.KindOf(err), upstream.KindHTTP)
	}
}

func TestService_FiltersBeforeCaching(t *testing.T) {
	fetcher := NewFetcher(pageFunc(func(ctx context.Context, page int) ([]RawReview, error) {
		return []RawReview{
			{ID: 1, Rating: 5, Published: true},
			{ID: 2, Rating: 2, Published: true},
			{ID: 3, Rating: 5, Published: false},
		}, nil
	}), FetcherConfig{PerPage: 100, MaxPages: 100, PageTimeout: time.Second})
	service := NewService(fetcher, 24*time.Hour)

	out, err := service.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("Cached dataset has %d reviews, want 1 publishable", len(out))
	}
}
