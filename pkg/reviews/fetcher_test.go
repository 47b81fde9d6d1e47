package reviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/efren-tilemart/judgeme-proxy/pkg/upstream"
)

// fakePages serves a fixed dataset page by page and counts calls.
type fakePages struct {
	total    int
	perPage  int
	failPage int
	calls    int
}

func (f *fakePages) FetchPage(ctx context.Context, page int) ([]RawReview, error) {
	f.calls++
	if f.failPage != 0 && page == f.failPage {
		return nil, upstream.HTTPError("reviews", 500, "boom")
	}

	start := (page - 1) * f.perPage
	if start > f.total {
		start = f.total
	}
	end := start + f.perPage
	if end > f.total {
		end = f.total
	}

	records := make([]RawReview, 0, end-start)
	for i := start; i < end; i++ {
		records = append(records, RawReview{ID: int64(i + 1), Rating: 5, Published: true})
	}
	return records, nil
}

func testFetcherConfig() FetcherConfig {
	return FetcherConfig{PerPage: 100, MaxPages: 100, PageTimeout: time.Second}
}

func TestFetcher_StopsOnShortPage(t *testing.T) {
	fake := &fakePages{total: 250, perPage: 100}
	fetcher := NewFetcher(fake, testFetcherConfig())

	records, err := fetcher.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(records) != 250 {
		t.Errorf("Records = %d, want 250", len(records))
	}
	if fake.calls != 3 {
		t.Errorf("Page requests = %d, want 3 (100, 100, 50)", fake.calls)
	}
}

func TestFetcher_ExactMultipleNeedsTrailingEmptyPage(t *testing.T) {
	fake := &fakePages{total: 200, perPage: 100}
	fetcher := NewFetcher(fake, testFetcherConfig())

	records, err := fetcher.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(records) != 200 {
		t.Errorf("Records = %d, want 200", len(records))
	}
	// Pages 1 and 2 are full, so page 3 (empty) marks the end.
	if fake.calls != 3 {
		t.Errorf("Page requests = %d, want 3", fake.calls)
	}
}

func TestFetcher_EmptyDataset(t *testing.T) {
	fake := &fakePages{total: 0, perPage: 100}
	fetcher := NewFetcher(fake, testFetcherConfig())

	records, err := fetcher.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Records = %d, want 0", len(records))
	}
	if fake.calls != 1 {
		t.Errorf("Page requests = %d, want 1", fake.calls)
	}
}

func TestFetcher_PageFailureAbortsRun(t *testing.T) {
	fake := &fakePages{total: 500, perPage: 100, failPage: 3}
	fetcher := NewFetcher(fake, testFetcherConfig())

	records, err := fetcher.FetchAll(context.Background())
	if err == nil {
		t.Fatal("Expected error from failing page")
	}
	if records != nil {
		t.Errorf("Partial results must be discarded, got %d records", len(records))
	}
	if fake.calls != 3 {
		t.Errorf("Run should abort at the failing page, got %d requests", fake.calls)
	}
}

func TestFetcher_PageCeilingOverflow(t *testing.T) {
	// Every page is full, so the run never terminates naturally.
	fake := &fakePages{total: 1_000_000, perPage: 100}
	fetcher := NewFetcher(fake, FetcherConfig{PerPage: 100, MaxPages: 5, PageTimeout: time.Second})

	_, err := fetcher.FetchAll(context.Background())
	if err == nil {
		t.Fatal("Expected overflow error")
	}
	if upstream.KindOf(err) != upstream.KindOverflow {
		t.Errorf("KindOf() = %q, want %q", upstream.KindOf(err), upstream.KindOverflow)
	}
	if fake.calls != 5 {
		t.Errorf("Page requests = %d, want 5 before the ceiling", fake.calls)
	}
}

func TestFetcher_PerPageTimeoutApplied(t *testing.T) {
	slow := pageFunc(func(ctx context.Context, page int) ([]RawReview, error) {
		select {
		case <-ctx.Done():
			return nil, upstream.Timeout("reviews", ctx.Err())
		case <-time.After(time.Second):
			return nil, errors.New("should have timed out")
		}
	})
	fetcher := NewFetcher(slow, FetcherConfig{PerPage: 100, MaxPages: 5, PageTimeout: 10 * time.Millisecond})

	_, err := fetcher.FetchAll(context.Background())
	if upstream.KindOf(err) != upstream.KindTimeout {
		t.Errorf("KindOf() = %q, want %q", upstream.KindOf(err), upstream.KindTimeout)
	}
}

type pageFunc func(ctx context.Context, page int) ([]RawReview, error)

func (f pageFunc) FetchPage(ctx context.Context, page int) ([]RawReview, error) {
	return f(ctx, page)
}
