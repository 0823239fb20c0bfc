package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	minesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mining_clicks_total",
		Help: "Total processed mining clicks",
	})
	goldMinted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gold_minted_total",
		Help: "Total gold produced by mining and geodes",
	})
	geodesFound = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geodes_found_total",
		Help: "Total geodes discovered while mining",
	})
	requestsResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requests_resolved_total",
			Help: "Operator request decisions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(minesTotal, goldMinted, geodesFound, requestsResolved)
}
