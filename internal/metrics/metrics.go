package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kanban_api"

// Metrics aggregates all Prometheus collectors for the service
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Database
	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbConnsOpen     prometheus.Gauge
	dbConnsIdle     prometheus.Gauge
	dbConnsInUse    prometheus.Gauge

	// Business
	tasksCreatedTotal    prometheus.Counter
	tasksMovedTotal      prometheus.Counter
	reordersTotal        *prometheus.CounterVec
	reorderRejectsTotal  *prometheus.CounterVec
	broadcastsTotal      prometheus.Counter
	broadcastDropsTotal  prometheus.Counter
	activityWritesTotal  *prometheus.CounterVec
	wsClientsConnected   prometheus.Gauge
	boardsGauge          prometheus.Gauge
	usersGauge           prometheus.Gauge
}

// New creates the metrics set on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path and status class",
		}, []string{"method", "path", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),

		httpRequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "In-flight HTTP requests",
		}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency by operation and table",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation", "table"}),

		dbQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_query_errors_total",
			Help:      "Database query errors by operation and table",
		}, []string{"operation", "table"}),

		dbConnsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_open",
			Help:      "Open database connections",
		}),

		dbConnsIdle: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_idle",
			Help:      "Idle database connections",
		}),

		dbConnsInUse: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_in_use",
			Help:      "Database connections in use",
		}),

		tasksCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_created_total",
			Help:      "Tasks created since start",
		}),

		tasksMovedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_moved_total",
			Help:      "Tasks moved across columns since start",
		}),

		reordersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reorders_total",
			Help:      "Accepted reorder operations by kind",
		}, []string{"kind"}),

		reorderRejectsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reorder_rejects_total",
			Help:      "Rejected reorder operations by kind",
		}, []string{"kind"}),

		broadcastsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_broadcasts_total",
			Help:      "Realtime events broadcast to connected clients",
		}),

		broadcastDropsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_broadcast_drops_total",
			Help:      "Realtime events dropped for slow clients",
		}),

		activityWritesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_writes_total",
			Help:      "Activity log writes by result",
		}, []string{"result"}),

		wsClientsConnected: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_clients_connected",
			Help:      "Connected websocket clients",
		}),

		boardsGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "boards_total",
			Help:      "Boards currently stored",
		}),

		usersGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "users_total",
			Help:      "Users currently registered",
		}),
	}

	return m
}

// Registry exposes the underlying registry for the /metrics handler
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordDBQuery implements database.MetricsRecorder
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	safeExecute(func() {
		if table == "" {
			table = "unknown"
		}
		m.dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
		if err != nil {
			m.dbQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}

// UpdateDBStats implements database.MetricsRecorder
func (m *Metrics) UpdateDBStats(open, idle, inUse int) {
	safeExecute(func() {
		m.dbConnsOpen.Set(float64(open))
		m.dbConnsIdle.Set(float64(idle))
		m.dbConnsInUse.Set(float64(inUse))
	})
}

// safeExecute shields request handling from a panicking collector
func safeExecute(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
