package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/efren-tilemart/judgeme-proxy/pkg/logging"
	"github.com/efren-tilemart/judgeme-proxy/pkg/upstream"
)

// Querier is the interface the catalog client implements for chunk
// resolution.
type Querier interface {
	// ProductsByHandles resolves one chunk of handles with a single
	// upstream query.
	ProductsByHandles(ctx context.Context, handles []string) ([]RawProduct, error)
}

// ResolverConfig holds batch resolution configuration.
type ResolverConfig struct {
	// ChunkSize bounds the handle count per upstream query, matching
	// the upstream's query-complexity limit.
	ChunkSize int

	// ChunkTimeout bounds each chunk query independently.
	ChunkTimeout time.Duration
}

// DefaultResolverConfig returns the standard resolver configuration.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		ChunkSize:    50,
		ChunkTimeout: 5 * time.Second,
	}
}

// Resolver resolves arbitrarily large handle sets by partitioning them
// into upstream-safe chunks and querying the chunks concurrently.
//
// Resolution is all-or-nothing: one failed chunk fails the whole call.
// Merged results follow upstream-response order within each chunk and
// chunk order across chunks, not input-key order.
type Resolver struct {
	querier Querier
	config  ResolverConfig
	logger  zerolog.Logger
}

// NewResolver creates a batch resolver over the given querier.
func NewResolver(querier Querier, cfg ResolverConfig) *Resolver {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 50
	}
	if cfg.ChunkTimeout <= 0 {
		cfg.ChunkTimeout = 5 * time.Second
	}
	return &Resolver{
		querier: querier,
		config:  cfg,
		logger:  logging.NewLogger("catalog-resolver"),
	}
}

// Resolve resolves the given handles into product summaries.
func (r *Resolver) Resolve(ctx context.Context, handles []string) ([]ProductSummary, error) {
	if handles == nil {
		return nil, upstream.Validation("handles must be a list of strings")
	}

	cleaned := make([]string, 0, len(handles))
	for _, h := range handles {
		h = strings.TrimSpace(h)
		if h != "" {
			cleaned = append(cleaned, h)
		}
	}
	if len(cleaned) == 0 {
		return []ProductSummary{}, nil
	}

	chunks := chunk(cleaned, r.config.ChunkSize)
	results := make([][]RawProduct, len(chunks))

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for i, ch := range chunks {
		g.Go(func() error {
			chunkCtx, cancel := context.WithTimeout(gctx, r.config.ChunkTimeout)
			defer cancel()

			chunksTotal.Inc()
			records, err := r.querier.ProductsByHandles(chunkCtx, ch)
			if err != nil {
				r.logger.Warn().
					Err(err).
					Int("chunk", i).
					Int("handles", len(ch)).
					Msg("Chunk query failed")
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		resolutionsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	summaries := make([]ProductSummary, 0, len(cleaned))
	for _, records := range results {
		for _, raw := range records {
			summaries = append(summaries, Summarize(raw))
		}
	}

	resolutionsTotal.WithLabelValues("success").Inc()
	r.logger.Debug().
		Int("handles", len(cleaned)).
		Int("chunks", len(chunks)).
		Int("resolved", len(summaries)).
		Dur("duration", time.Since(start)).
		Msg("Batch resolution complete")

	return summaries, nil
}

// chunk partitions keys into slices of at most size elements.
func chunk(keys []string, size int) [][]string {
	chunks := make([][]string, 0, (len(keys)+size-1)/size)
	for start := 0; start < len(keys); start += size {
		end := start + size
		if end > len(keys) {
			end = len(keys)
		}
		chunks = append(chunks, keys[start:end])
	}
	return chunks
}
