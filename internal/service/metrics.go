package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Feed pipeline metrics, exposed on /metrics.
var (
	feedsGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "padl",
		Subsystem: "feed",
		Name:      "generated_total",
		Help:      "Number of feeds generated.",
	})

	lobbiesScoredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "padl",
		Subsystem: "feed",
		Name:      "lobbies_scored_total",
		Help:      "Number of lobbies run through the scorer.",
	})

	serendipityInjectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "padl",
		Subsystem: "feed",
		Name:      "serendipity_injections_total",
		Help:      "Number of lobbies boosted by the serendipity draw.",
	})

	feedGenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "padl",
		Subsystem: "feed",
		Name:      "generation_duration_seconds",
		Help:      "Time spent scoring and assembling a feed.",
		Buckets:   prometheus.DefBuckets,
	})
)
