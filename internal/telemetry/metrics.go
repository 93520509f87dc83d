// Package telemetry wires Prometheus metrics and OpenTelemetry tracing into
// the runtime and scheduler.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "laiweb").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for patch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "laiweb",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the runtime and scheduler collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	mounts          *prometheus.CounterVec
	destroys        *prometheus.CounterVec
	diffOps         *prometheus.CounterVec
	renders         *prometheus.CounterVec
	lifecycleErrors *prometheus.CounterVec
	patchDuration   prometheus.Histogram
	tasksRun        prometheus.Counter
	tasksFailed     prometheus.Counter
	drains          prometheus.Counter
	drainSize       prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}
	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}

	return &Metrics{
		mounts:          counterVec("mounts_total", "Virtual nodes mounted, by kind", "kind"),
		destroys:        counterVec("destroys_total", "Virtual nodes destroyed, by kind", "kind"),
		diffOps:         counterVec("diff_operations_total", "Child list operations applied, by op", "op"),
		renders:         counterVec("component_renders_total", "Component render calls, by component", "component"),
		lifecycleErrors: counterVec("lifecycle_errors_total", "Component lifecycle violations, by operation", "op"),
		patchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patch_duration_seconds",
			Help:        "Time spent patching a component tree",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
		tasksRun:    counter("scheduler_tasks_total", "Deferred tasks run by the scheduler"),
		tasksFailed: counter("scheduler_task_failures_total", "Deferred tasks that returned an error or panicked"),
		drains:      counter("scheduler_drains_total", "Scheduler drains that ran at least one task"),
		drainSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "scheduler_drain_size",
			Help:        "Tasks run per scheduler drain",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 2, 4, 8, 16, 32, 64},
		}),
	}
}

// Mount records a mounted node.
func (m *Metrics) Mount(kind string) {
	if m == nil {
		return
	}
	m.mounts.WithLabelValues(kind).Inc()
}

// Destroy records a destroyed node.
func (m *Metrics) Destroy(kind string) {
	if m == nil {
		return
	}
	m.destroys.WithLabelValues(kind).Inc()
}

// DiffOp records n applied child operations of kind op.
func (m *Metrics) DiffOp(op string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.diffOps.WithLabelValues(op).Add(float64(n))
}

// Render records a component render.
func (m *Metrics) Render(component string) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(component).Inc()
}

// LifecycleError records a lifecycle violation.
func (m *Metrics) LifecycleError(op string) {
	if m == nil {
		return
	}
	m.lifecycleErrors.WithLabelValues(op).Inc()
}

// PatchDuration records the time taken by one component patch.
func (m *Metrics) PatchDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.patchDuration.Observe(d.Seconds())
}

// TaskRun implements scheduler.Metrics.
func (m *Metrics) TaskRun() {
	if m == nil {
		return
	}
	m.tasksRun.Inc()
}

// TaskFailed implements scheduler.Metrics.
func (m *Metrics) TaskFailed() {
	if m == nil {
		return
	}
	m.tasksFailed.Inc()
}

// Drained implements scheduler.Metrics.
func (m *Metrics) Drained(tasks int) {
	if m == nil {
		return
	}
	m.drains.Inc()
	m.drainSize.Observe(float64(tasks))
}
