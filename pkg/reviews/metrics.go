package reviews

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_reviews_refreshes_total",
			Help: "Total review snapshot refresh attempts by result",
		},
		[]string{"result"}, // "success", "failure"
	)

	staleServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "proxy_reviews_stale_served_total",
			Help: "Total requests served from a stale snapshot after a failed refresh",
		},
	)

	pagesFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "proxy_reviews_pages_fetched_total",
			Help: "Total review pages fetched from the upstream",
		},
	)

	pageOverflows = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "proxy_reviews_page_overflows_total",
			Help: "Total pagination runs aborted at the page ceiling",
		},
	)
)
