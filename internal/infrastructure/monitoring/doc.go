/*
Package monitoring provides Prometheus metrics for the gateway.

Metrics live in their own registry so tests can create independent
collectors and the exposition only carries what the gateway records.

# Metrics

  - gateway_http_requests_total, gateway_http_request_duration_seconds and
    request/response size histograms, labelled by route
  - gateway_relay_calls_total, gateway_relay_duration_seconds and
    gateway_relay_errors_total for flow engine calls
  - gateway_breaker_state per circuit breaker (0 closed, 1 half-open, 2 open)
  - gateway_uptime_seconds

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "langflow", "run")
	// ... call the flow engine ...
	timer.Stop("success")
*/
package monitoring
