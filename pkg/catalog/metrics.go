package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_catalog_resolutions_total",
			Help: "Total batch resolutions by result",
		},
		[]string{"result"}, // "success", "failure"
	)

	chunksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "proxy_catalog_chunks_total",
			Help: "Total chunk queries dispatched to the catalog upstream",
		},
	)
)
