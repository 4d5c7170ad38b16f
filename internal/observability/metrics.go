package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for loading and judging scenarios.
type Metrics struct {
	RecordsParsed  *prometheus.CounterVec // labels: record={scenario,location,resident}
	ParseWarnings  *prometheus.CounterVec // labels: kind={format,number,characteristic}
	RecordsDropped prometheus.Counter

	ScenariosJudged *prometheus.CounterVec // labels: mode={simulation,interactive}
	ResidentsSaved  prometheus.Counter
	RunDuration     prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewMetricsForTesting()
	prometheus.MustRegister(
		m.RecordsParsed,
		m.ParseWarnings,
		m.RecordsDropped,
		m.ScenariosJudged,
		m.ResidentsSaved,
		m.RunDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rescuebot",
			Name:      "records_parsed_total",
			Help:      "Scenario file lines parsed, by record kind.",
		}, []string{"record"}),
		ParseWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rescuebot",
			Name:      "parse_warnings_total",
			Help:      "Default substitutions made while parsing, by kind.",
		}, []string{"kind"}),
		RecordsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rescuebot",
			Name:      "records_dropped_total",
			Help:      "Records dropped because no enclosing scenario or location existed.",
		}),
		ScenariosJudged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rescuebot",
			Name:      "scenarios_judged_total",
			Help:      "Scenarios judged, by mode.",
		}, []string{"mode"}),
		ResidentsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rescuebot",
			Name:      "residents_saved_total",
			Help:      "Residents at rescued locations.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rescuebot",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete judging run.",
			Buckets:   []float64{0.001, 0.01, 0.1, 1, 10, 60, 300, 900},
		}),
	}
}

// WriteTextfile writes the default registry in the text exposition format,
// for collection by a node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
