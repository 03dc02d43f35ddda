package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "collaborators"

const (
	RowCreated = "created"
	RowSkipped = "skipped"
	RowFailed  = "failed"
)

type Import struct {
	rows  *prometheus.CounterVec
	tasks *prometheus.CounterVec
	cache *prometheus.CounterVec
}

func NewImport(reg prometheus.Registerer) *Import {
	factory := promauto.With(reg)
	return &Import{
		rows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "CSV rows processed by the import pipeline, by outcome.",
		}, []string{"result"}),
		tasks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_total",
			Help:      "Background tasks handled by the worker pool, by type and outcome.",
		}, []string{"type", "result"}),
		cache: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_cache_total",
			Help:      "Listing cache lookups, by outcome.",
		}, []string{"result"}),
	}
}

func (m *Import) ObserveRow(result string) {
	m.rows.WithLabelValues(result).Inc()
}

func (m *Import) ObserveTask(taskType, result string) {
	m.tasks.WithLabelValues(taskType, result).Inc()
}

func (m *Import) ObserveCache(hit bool) {
	if hit {
		m.cache.WithLabelValues("hit").Inc()
		return
	}
	m.cache.WithLabelValues("miss").Inc()
}
