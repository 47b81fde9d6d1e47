package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SnapshotReads tracks snapshot reads by outcome (fresh, stale, empty).
	SnapshotReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_cache_reads_total",
			Help: "Total snapshot cache reads by outcome",
		},
		[]string{"outcome"}, // "fresh", "stale", "empty"
	)

	snapshotWrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "proxy_cache_writes_total",
			Help: "Total snapshot cache writes",
		},
	)
)
