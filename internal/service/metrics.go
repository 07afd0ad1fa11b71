package service

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// exportMetrics are process wide: the server is rebuilt on config reload but
// the collectors are registered once.
var (
	exportTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "annotum",
		Subsystem: "export",
		Name:      "requests_total",
		Help:      "XML exports by mode and result.",
	}, []string{"mode", "result"})

	exportDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "annotum",
		Subsystem: "export",
		Name:      "render_seconds",
		Help:      "Time spent resolving and rendering one document.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"mode"})

	exportSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "annotum",
		Subsystem: "export",
		Name:      "document_bytes",
		Help:      "Size of rendered XML documents.",
		Buckets:   prometheus.ExponentialBuckets(1024, 2, 12),
	})

	archiveTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "annotum",
		Subsystem: "archive",
		Name:      "objects_total",
		Help:      "Archived documents by result.",
	}, []string{"result"})

	registerOnce sync.Once
)

// RegisterMetrics registers the service collectors with reg. Repeated calls
// are no-ops.
func RegisterMetrics(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(exportTotal, exportDuration, exportSize, archiveTotal)
	})
}
