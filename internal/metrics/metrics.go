// Package metrics exposes the engine's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fbohub"

// Metrics holds all prometheus metrics for the reconciliation engine.
type Metrics struct {
	SyncsTotal     *prometheus.CounterVec
	RecordsMerged  prometheus.Counter
	RecordsAdded   prometheus.Counter
	ConflictsTotal prometheus.Counter
	PushesTotal    *prometheus.CounterVec
	ImportRows     *prometheus.CounterVec
	SyncDuration   prometheus.Histogram
}

// New creates the metric set on the given registerer. Tests pass a fresh
// prometheus.NewRegistry() so multiple managers can coexist in one process.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SyncsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "syncs_total",
			Help:      "Location syncs by outcome",
		}, []string{"outcome"}),
		RecordsMerged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_merged_total",
			Help:      "Incoming records merged into existing local records",
		}),
		RecordsAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_added_total",
			Help:      "Incoming records inserted as new local records",
		}),
		ConflictsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "create_conflicts_total",
			Help:      "Creates rejected because another contributor's draft holds the name",
		}),
		PushesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pushes_total",
			Help:      "Best-effort pushes of locally edited records by outcome",
		}, []string{"outcome"}),
		ImportRows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Bulk import rows by outcome",
		}, []string{"outcome"}),
		SyncDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "Time taken to sync one location",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Outcome label values.
const (
	OutcomeOK           = "ok"
	OutcomeRemoteFailed = "remote_failed"
	OutcomeFailed       = "failed"
	OutcomeImported     = "imported"
	OutcomeSkipped      = "skipped"
)
