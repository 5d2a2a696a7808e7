package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every geff collector. A batch run has no scrape endpoint,
// so the registry is written out with WriteTextfile instead.
var Registry = prometheus.NewRegistry()

var (
	stepDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geff_step_duration_seconds",
			Help:    "Duration of each processing step in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900, 3600},
		},
		[]string{"step"},
	)

	completionPollsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geff_completion_polls_total",
			Help: "Total number of completed-set counter reads.",
		},
		[]string{"azimuth"},
	)

	eopLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geff_eop_lookups_total",
			Help: "Total number of polar motion lookups by outcome.",
		},
		[]string{"status", "bulletin"},
	)

	azimuthGravity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "geff_azimuth_gravity_microgal",
			Help: "Gravity at effective height of the last processed run per azimuth.",
		},
		[]string{"azimuth"},
	)
)

func init() {
	Registry.MustRegister(stepDurationSeconds)
	Registry.MustRegister(completionPollsTotal)
	Registry.MustRegister(eopLookupsTotal)
	Registry.MustRegister(azimuthGravity)
}

// ObserveStep records how long a processing step took.
func ObserveStep(step string, seconds float64) {
	stepDurationSeconds.WithLabelValues(step).Observe(seconds)
}

// IncCompletionPolls counts one read of the completed-set counter.
func IncCompletionPolls(azimuth string) {
	completionPollsTotal.WithLabelValues(azimuth).Inc()
}

// IncEOPLookup counts one polar motion lookup.
func IncEOPLookup(status, bulletin string) {
	eopLookupsTotal.WithLabelValues(status, bulletin).Inc()
}

// SetAzimuthGravity records the final gravity value of an azimuth.
func SetAzimuthGravity(azimuth string, microGal float64) {
	azimuthGravity.WithLabelValues(azimuth).Set(microGal)
}

// WriteTextfile writes the registry in the text exposition format, suitable
// for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
