// Package metrics holds the Prometheus collectors exported on /admin/metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sales_crm",
		Subsystem: "datastore",
		Name:      "operations_total",
		Help:      "Data store operations by collection, operation and result.",
	}, []string{"collection", "op", "result"})

	StoreLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sales_crm",
		Subsystem: "datastore",
		Name:      "operation_seconds",
		Help:      "Data store operation latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"collection", "op"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sales_crm",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route template, method and status code.",
	}, []string{"route", "method", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sales_crm",
		Subsystem: "http",
		Name:      "request_seconds",
		Help:      "HTTP request latency by route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	CascadeDeletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sales_crm",
		Name:      "user_cascade_deletions_total",
		Help:      "User deletion cascades by result.",
	}, []string{"result"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sales_crm",
		Name:      "active_sessions",
		Help:      "Sessions currently held in the registry.",
	})
)
