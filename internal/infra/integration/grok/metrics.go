package grok

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	llmRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Total number of completion endpoint attempts",
		},
		[]string{"endpoint", "status"},
	)

	llmRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_retries_total",
			Help: "Total number of retried completion attempts",
		},
		[]string{"endpoint"},
	)

	llmRepairsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "llm_json_repairs_total",
			Help: "Total number of JSON repair round trips",
		},
	)
)
