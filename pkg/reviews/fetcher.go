package reviews

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/efren-tilemart/judgeme-proxy/pkg/logging"
	"github.com/efren-tilemart/judgeme-proxy/pkg/upstream"
)

// PageFetcher is the interface the upstream client implements for
// single-page fetching.
type PageFetcher interface {
	// FetchPage fetches one page of reviews. Page numbering starts at 1.
	FetchPage(ctx context.Context, page int) ([]RawReview, error)
}

// FetcherConfig holds pagination configuration.
type FetcherConfig struct {
	// PerPage is the fixed page size requested from the upstream.
	// A page with fewer records marks the end of the dataset.
	PerPage int

	// MaxPages bounds a run against a misbehaving upstream that never
	// returns a short page.
	MaxPages int

	// PageTimeout bounds each page request independently.
	PageTimeout time.Duration
}

// DefaultFetcherConfig returns the standard pagination configuration.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		PerPage:     100,
		MaxPages:    100,
		PageTimeout: 5 * time.Second,
	}
}

// Fetcher pulls the complete review dataset from a page-based upstream.
// Pages are fetched sequentially with one attempt each; any page failure
// aborts the run and discards everything accumulated so far.
type Fetcher struct {
	fetcher PageFetcher
	config  FetcherConfig
	logger  zerolog.Logger
}

// NewFetcher creates a paginated fetcher over the given page source.
func NewFetcher(fetcher PageFetcher, cfg FetcherConfig) *Fetcher {
	if cfg.PerPage <= 0 {
		cfg.PerPage = 100
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 100
	}
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = 5 * time.Second
	}
	return &Fetcher{
		fetcher: fetcher,
		config:  cfg,
		logger:  logging.NewLogger("reviews-fetcher"),
	}
}

// FetchAll fetches pages starting at 1 until a page returns fewer than
// PerPage records (including zero), accumulating all returned records.
func (f *Fetcher) FetchAll(ctx context.Context) ([]RawReview, error) {
	start := time.Now()
	var all []RawReview

	for page := 1; ; page++ {
		if page > f.config.MaxPages {
			f.logger.Error().
				Int("page", page).
				Int("max_pages", f.config.MaxPages).
				Msg("Pagination ceiling exceeded")
			pageOverflows.Inc()
			return nil, upstream.Overflow(serviceName,
				fmt.Sprintf("pagination exceeded %d pages", f.config.MaxPages))
		}

		pageCtx, cancel := context.WithTimeout(ctx, f.config.PageTimeout)
		records, err := f.fetcher.FetchPage(pageCtx, page)
		cancel()

		if err != nil {
			f.logger.Warn().
				Err(err).
				Int("page", page).
				Msg("Page fetch failed - discarding run")
			return nil, err
		}

		pagesFetched.Inc()
		all = append(all, records...)

		if len(records) < f.config.PerPage {
			break
		}
	}

	f.logger.Info().
		Int("records", len(all)).
		Dur("duration", time.Since(start)).
		Msg("Pagination run complete")

	return all, nil
}
