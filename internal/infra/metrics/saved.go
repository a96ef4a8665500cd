package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		savedToggles,
		savedSetSize,
	)
}

var (
	savedToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saved_job_toggles_total",
			Help: "Save/unsave toggle actions on job listings.",
		},
		[]string{"action"}, // save | unsave
	)

	savedSetSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "saved_jobs",
			Help: "Current cardinality of the saved-jobs set.",
		},
	)
)

// ObserveSavedToggle records one toggle and the resulting set size.
func ObserveSavedToggle(saved bool, setSize int) {
	action := "unsave"
	if saved {
		action = "save"
	}
	savedToggles.WithLabelValues(action).Inc()
	savedSetSize.Set(float64(setSize))
}
