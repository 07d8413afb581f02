package metrics

import (
	"time"
)

// RecordHTTPRequest records one completed HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	safeExecute(func() {
		m.httpRequestsTotal.WithLabelValues(method, path, categorizeStatus(status)).Inc()
		m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	})
}

// IncInFlight marks a request as started
func (m *Metrics) IncInFlight() {
	safeExecute(func() { m.httpRequestsInFlight.Inc() })
}

// DecInFlight marks a request as finished
func (m *Metrics) DecInFlight() {
	safeExecute(func() { m.httpRequestsInFlight.Dec() })
}

// categorizeStatus collapses status codes into classes to keep label
// cardinality low.
func categorizeStatus(status int) string {
	switch {
	case status < 200:
		return "1xx"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// ShouldSkipEndpoint filters endpoints that would only add noise
func ShouldSkipEndpoint(path string) bool {
	switch path {
	case "/metrics", "/health", "/favicon.ico":
		return true
	}
	return false
}
