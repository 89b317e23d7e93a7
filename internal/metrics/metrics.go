// Package metrics exposes Prometheus instrumentation for the dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts outbound calls to the commerce backend by
	// target (auth, orders) and outcome (ok, error).
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderdash_upstream_requests_total",
		Help: "Outbound requests to the commerce backend",
	}, []string{"target", "outcome"})

	// OrdersParsed counts records produced by the feed parser after filtering.
	OrdersParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderdash_orders_parsed_total",
		Help: "Order records extracted from upstream feeds",
	})

	// HTTPRequests counts handled inbound requests by path and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderdash_http_requests_total",
		Help: "Inbound HTTP requests",
	}, []string{"path", "status"})
)
