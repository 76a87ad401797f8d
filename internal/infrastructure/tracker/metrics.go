package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_requests_total",
			Help: "Total number of upstream API calls by final result",
		},
		[]string{"endpoint", "result"},
	)

	throttleRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_throttle_retries_total",
			Help: "Total number of backoff retries after HTTP 429",
		},
	)

	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_cache_hits_total",
			Help: "Total number of responses served from the cache",
		},
		[]string{"endpoint"},
	)
)
