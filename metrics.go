package history

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors a Manager reports to. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	operations    *prometheus.CounterVec
	storageErrors *prometheus.CounterVec
	undoDepth     prometheus.Gauge
	redoDepth     prometheus.Gauge
	checkpoints   prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which is useful in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "readme",
			Subsystem: "history",
			Name:      "operations_total",
			Help:      "History operations that changed state, by operation.",
		}, []string{"op"}),
		storageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "readme",
			Subsystem: "history",
			Name:      "storage_errors_total",
			Help:      "Failed reads and writes of persisted history, by direction.",
		}, []string{"direction"}),
		undoDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "readme",
			Subsystem: "history",
			Name:      "undo_depth",
			Help:      "Number of undo steps available.",
		}),
		redoDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "readme",
			Subsystem: "history",
			Name:      "redo_depth",
			Help:      "Number of redo steps available.",
		}),
		checkpoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "readme",
			Subsystem: "history",
			Name:      "checkpoints",
			Help:      "Number of saved checkpoints.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.operations, m.storageErrors, m.undoDepth, m.redoDepth, m.checkpoints)
	}
	return m
}

func (m *Metrics) op(name string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(name).Inc()
}

func (m *Metrics) storageError(direction string) {
	if m == nil {
		return
	}
	m.storageErrors.WithLabelValues(direction).Inc()
}

func (m *Metrics) depths(undo, redo, checkpoints int) {
	if m == nil {
		return
	}
	m.undoDepth.Set(float64(undo))
	m.redoDepth.Set(float64(redo))
	m.checkpoints.Set(float64(checkpoints))
}
