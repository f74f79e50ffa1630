package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agrotrack"

// Label names and values.
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelFrom   = "from"
	LabelTo     = "to"
	LabelResult = "result"

	ResultHit  = "hit"
	ResultMiss = "miss"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status code.",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{LabelMethod, LabelPath},
	)
)

// Domain metrics
var (
	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Culture status changes applied, by previous and new status.",
		},
		[]string{LabelFrom, LabelTo},
	)

	ProgressCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "progress_cache_lookups_total",
			Help:      "Progress memo cache lookups by result.",
		},
		[]string{LabelResult},
	)

	HarvestsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "harvests_recorded_total",
			Help:      "Harvest records created.",
		},
	)
)
