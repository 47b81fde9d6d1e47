package pricing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var derivationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "proxy_pricing_derivations_total",
		Help: "Total price derivations by result",
	},
	[]string{"result"}, // "success", "failure"
)
