package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	KindTimeEntry          = "time"
	KindNonAccountingEntry = "non_accounting"

	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

var (
	once sync.Once

	entryValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shiftbook",
			Name:      "entry_validation_total",
			Help:      "Count of entry validation decisions by entry kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shiftbook",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of handled HTTP requests.",
		},
		[]string{"method", "path"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(entryValidations, httpDuration)
	})
}

func IncEntryValidation(kind, outcome string) {
	entryValidations.WithLabelValues(kind, outcome).Inc()
}

func ObserveRequest(method, path string, seconds float64) {
	httpDuration.WithLabelValues(method, path).Observe(seconds)
}
