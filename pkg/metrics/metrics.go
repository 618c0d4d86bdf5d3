// Package metrics exposes prometheus instrumentation for network builds.
// 'promauto' registers everything on the default registry at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BuildsTotal counts build attempts, labeled by outcome
	// ("ok", "shape_mismatch", "invalid_structure").
	BuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "molnet_builds_total",
			Help: "Total number of network build attempts",
		},
		[]string{"status"},
	)

	// BuildDuration measures end-to-end build time. Edge construction is
	// quadratic in the input size, hence the wide upper buckets.
	BuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "molnet_build_duration_seconds",
			Help:    "Duration of network builds in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 60, 300},
		},
	)

	// ComparisonsTotal counts pairwise similarity evaluations.
	ComparisonsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "molnet_similarity_comparisons_total",
			Help: "Total number of pairwise similarity evaluations",
		},
	)

	// NetworkNodes and NetworkEdges track the size of the last built network.
	NetworkNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "molnet_network_nodes",
			Help: "Node count of the most recently built network",
		},
	)
	NetworkEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "molnet_network_edges",
			Help: "Edge count of the most recently built network",
		},
	)
)
