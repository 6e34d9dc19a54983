package flatfile

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fyrsmithlabs/roster/internal/registry"
)

var (
	// LoadsTotal counts LoadAll calls.
	// Labels: result (success, missing, parse_error, io_error)
	LoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roster",
			Subsystem: "flatfile",
			Name:      "loads_total",
			Help:      "Total number of storage file loads by result",
		},
		[]string{"result"},
	)

	// SavesTotal counts SaveAll calls.
	// Labels: result (success, encode_error, io_error)
	SavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roster",
			Subsystem: "flatfile",
			Name:      "saves_total",
			Help:      "Total number of storage file saves by result",
		},
		[]string{"result"},
	)

	// Records is the number of records per variant after the last load or save.
	// Labels: kind (Person, EnrichedPerson, StaffPerson)
	Records = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "roster",
			Subsystem: "flatfile",
			Name:      "records",
			Help:      "Records per variant after the last load or save",
		},
		[]string{"kind"},
	)

	// LastSaveTimestamp is the unix time of the last successful save.
	LastSaveTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "roster",
			Subsystem: "flatfile",
			Name:      "last_save_timestamp_seconds",
			Help:      "Unix time of the last successful save",
		},
	)
)

func recordCounts(r *registry.Registry) {
	for kind, n := range r.Counts() {
		Records.WithLabelValues(kind.String()).Set(float64(n))
	}
}

// WriteMetricsTextfile dumps the default registry in the text exposition
// format, for pickup by a node_exporter textfile collector.
func WriteMetricsTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

