package reviews

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/efren-tilemart/judgeme-proxy/pkg/cache"
	"github.com/efren-tilemart/judgeme-proxy/pkg/logging"
)

// Service serves the sanitized review dataset from a TTL snapshot cache.
//
// Freshness policy: a snapshot younger than the TTL is served without
// contacting the upstream. On a miss or a stale snapshot, one refresh is
// attempted; concurrent callers coalesce onto that refresh instead of
// starting their own. If the refresh fails and any snapshot exists, the
// stale snapshot is served instead of the failure (fail open); with no
// snapshot at all the failure is surfaced.
type Service struct {
	fetcher  *Fetcher
	snapshot *cache.Snapshot[[]Review]
	ttl      time.Duration
	flight   singleflight.Group
	logger   zerolog.Logger
}

// NewService creates a reviews service over the given fetcher.
func NewService(fetcher *Fetcher, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		fetcher:  fetcher,
		snapshot: cache.NewSnapshot[[]Review](),
		ttl:      ttl,
		logger:   logging.NewLogger("reviews-service"),
	}
}

// Fetch returns the review dataset, refreshing the snapshot when needed.
func (s *Service) Fetch(ctx context.Context) ([]Review, error) {
	if payload, age, ok := s.snapshot.Read(); ok && age < s.ttl {
		cache.SnapshotReads.WithLabelValues("fresh").Inc()
		s.logger.Debug().
			Dur("cache_age", age).
			Int("records", len(payload)).
			Msg("Serving fresh snapshot")
		return payload, nil
	}

	result, err, shared := s.flight.Do("reviews", func() (any, error) {
		// A caller queued behind a completed refresh sees the new
		// snapshot here and skips a duplicate upstream run.
		if payload, age, ok := s.snapshot.Read(); ok && age < s.ttl {
			return payload, nil
		}
		return s.refresh(ctx)
	})
	if err != nil {
		if payload, age, ok := s.snapshot.Read(); ok {
			cache.SnapshotReads.WithLabelValues("stale").Inc()
			staleServed.Inc()
			s.logger.Warn().
				Err(err).
				Dur("cache_age", age).
				Msg("Refresh failed - serving stale snapshot")
			return payload, nil
		}
		cache.SnapshotReads.WithLabelValues("empty").Inc()
		s.logger.Error().Err(err).Msg("Refresh failed with no snapshot to fall back on")
		return nil, err
	}

	if shared {
		s.logger.Debug().Msg("Joined in-flight refresh")
	}
	return result.([]Review), nil
}

// refresh runs one full pagination run and replaces the snapshot on
// success. Partial runs never reach the snapshot.
func (s *Service) refresh(ctx context.Context) ([]Review, error) {
	raw, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		refreshesTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	clean := Sanitize(raw)
	s.snapshot.Write(clean)
	refreshesTotal.WithLabelValues("success").Inc()

	s.logger.Info().
		Int("raw_records", len(raw)).
		Int("published_records", len(clean)).
		Msg("Snapshot refreshed")

	return clean, nil
}
