package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(httpRequests)
}

var httpRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests by method, path, and status.",
	},
	[]string{"method", "path", "status"},
)

// ObserveHTTPRequest records one handled request. Path should be the
// route pattern, not the raw URL, to keep cardinality bounded.
func ObserveHTTPRequest(method, path string, status int) {
	httpRequests.WithLabelValues(norm(method), norm(path), strconv.Itoa(status)).Inc()
}
