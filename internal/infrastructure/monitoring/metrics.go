package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/GriffinCanCode/tccm/internal/shared/errors"
)

// Transfer directions
const (
	DirectionUpload   = "upload"
	DirectionDownload = "download"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	Operations    *prometheus.CounterVec
	Duration      *prometheus.HistogramVec
	TransferBytes *prometheus.CounterVec
	ArchiveFiles  prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates a metrics collector on a private registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tccm_operations_total",
				Help: "Total number of tccm commands by result",
			},
			[]string{"command", "result"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tccm_operation_duration_seconds",
				Help:    "Wall time of tccm commands",
				Buckets: []float64{.01, .05, .1, .5, 1, 5, 15, 60, 300},
			},
			[]string{"command"},
		),
		TransferBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tccm_transfer_bytes_total",
				Help: "Bytes sent to or received from the registry",
			},
			[]string{"direction"},
		),
		ArchiveFiles: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tccm_archive_entries",
				Help: "Number of entries in the last archive built",
			},
		),
	}
}

// Registry returns the registry the metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOperation records one finished command
func (m *Metrics) RecordOperation(command string, err error, duration time.Duration) {
	m.Operations.WithLabelValues(command, Result(err)).Inc()
	m.Duration.WithLabelValues(command).Observe(duration.Seconds())
}

// RecordTransfer adds bytes moved in the given direction
func (m *Metrics) RecordTransfer(direction string, bytes int64) {
	if bytes > 0 {
		m.TransferBytes.WithLabelValues(direction).Add(float64(bytes))
	}
}

// SetArchiveEntries records the size of the last archive
func (m *Metrics) SetArchiveEntries(count int) {
	m.ArchiveFiles.Set(float64(count))
}

// WriteTextfile writes all metrics to path in text exposition format.
// An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

// Result turns err into a result label: "success" or the error category
func Result(err error) string {
	if err == nil {
		return "success"
	}
	return string(errors.CategoryOf(err))
}
