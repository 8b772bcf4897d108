// Package metrics provides Prometheus metrics for the CareShift service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Scheduling metrics.
	schedulesGenerated prometheus.Counter
	tasksPlaced        prometheus.Counter
	ordersScored       prometheus.Counter
	ordersSkipped      prometheus.Counter
	scheduleNotes      *prometheus.CounterVec
	scheduleDuration   prometheus.Histogram

	// Shift-context state metrics.
	statePatients prometheus.Gauge
	stateOrders   prometheus.Gauge

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom histogram buckets for latency metrics.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry sets a custom Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry so the default Go collectors stay out of our scrape.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "careshift",
		subsystem:        "scheduler",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.schedulesGenerated = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "schedules_generated_total",
		Help:      "Number of schedules generated.",
	})
	m.tasksPlaced = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tasks_placed_total",
		Help:      "Number of tasks placed onto shift timelines.",
	})
	m.ordersScored = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "orders_scored_total",
		Help:      "Number of orders scored.",
	})
	m.ordersSkipped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "orders_skipped_total",
		Help:      "Number of orders skipped because they referenced an unknown patient.",
	})
	m.scheduleNotes = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "schedule_notes_total",
		Help:      "Degradation notes emitted by the packer, by reason.",
	}, []string{"reason"})
	m.scheduleDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "schedule_duration_ms",
		Help:      "Time spent generating a schedule in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.statePatients = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "state_patients",
		Help:      "Patients currently held in the shift context.",
	})
	m.stateOrders = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "state_orders",
		Help:      "Orders currently held in the shift context.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint, method, and status code.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	return m
}

// RecordScheduleGenerated records one schedule run and how many tasks it placed.
func RecordScheduleGenerated(tasks int) {
	globalManager.schedulesGenerated.Inc()
	globalManager.tasksPlaced.Add(float64(tasks))
}

// RecordScheduleDuration records how long a generation pass took.
func RecordScheduleDuration(ms float64) {
	globalManager.scheduleDuration.Observe(ms)
}

// RecordOrdersScored records scored and skipped order counts for one pass.
func RecordOrdersScored(scored, skipped int) {
	globalManager.ordersScored.Add(float64(scored))
	globalManager.ordersSkipped.Add(float64(skipped))
}

// RecordScheduleNote increments the note counter for a degradation reason.
func RecordScheduleNote(reason string) {
	globalManager.scheduleNotes.WithLabelValues(reason).Inc()
}

// UpdateStatePatients sets the patient gauge for the shift context.
func UpdateStatePatients(n int) {
	globalManager.statePatients.Set(float64(n))
}

// UpdateStateOrders sets the order gauge for the shift context.
func UpdateStateOrders(n int) {
	globalManager.stateOrders.Set(float64(n))
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
