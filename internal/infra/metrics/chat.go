package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		chatSends,
		chatSendLatencyMs,
	)
}

var (
	chatSends = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_sends_total",
			Help: "Completed chat send cycles, split by degraded outcome.",
		},
		[]string{"degraded"},
	)

	chatSendLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_send_latency_ms",
			Help:    "End-to-end chat send cycle latency in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000, 10000, 30000},
		},
		[]string{"degraded"},
	)
)

// ObserveChatSend records one completed send cycle.
func ObserveChatSend(degraded bool, latency time.Duration) {
	lbl := strconv.FormatBool(degraded)
	chatSends.WithLabelValues(lbl).Inc()
	chatSendLatencyMs.WithLabelValues(lbl).Observe(float64(latency.Milliseconds()))
}
