package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/vdsl/internal/errors"
	"github.com/vango-dev/vdsl/pkg/dsl"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vdsl").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
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

// WithBuckets sets the duration histogram buckets.
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
		Namespace: "vdsl",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Render outcomes used as the status label.
const (
	StatusOK       = "ok"
	StatusImproper = "improper"
	StatusNotQuiet = "not_quiet"
	StatusError    = "error"
)

// Metrics is a dsl.Observer that records outermost renders in Prometheus.
//
// Metrics collected:
//   - vdsl_renders_total: Counter of renders by name and status
//   - vdsl_render_duration_seconds: Histogram of render duration by name
//   - vdsl_render_elements: Histogram of elements constructed per render
//   - vdsl_improper_renders_total: Counter of improper renders by error code
//   - vdsl_waiting_renders_total: Counter of successful renders that are
//     still waiting on resources
type Metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderElements prometheus.Histogram
	improperTotal  *prometheus.CounterVec
	waitingTotal   prometheus.Counter
}

// Prometheus creates the metrics observer and registers its collectors.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	c := dsl.NewContext(dsl.WithObserver(telemetry.Prometheus(telemetry.WithRegistry(reg))))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of outermost renders",
			ConstLabels: config.ConstLabels,
		}, []string{"name", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"name"}),

		renderElements: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_elements",
			Help:        "Number of elements constructed per render",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 4, 8), // 1 to 16384
		}),

		improperTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "improper_renders_total",
			Help:        "Total number of renders that did not produce exactly one result",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		waitingTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "waiting_renders_total",
			Help:        "Total number of renders whose result is waiting on resources",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// BeginRender implements dsl.Observer.
func (m *Metrics) BeginRender(ctx context.Context, name string) (context.Context, func(dsl.RenderResult)) {
	return ctx, m.record
}

func (m *Metrics) record(r dsl.RenderResult) {
	status := Status(r.Err)
	m.rendersTotal.WithLabelValues(r.Name, status).Inc()
	m.renderDuration.WithLabelValues(r.Name).Observe(r.Duration.Seconds())
	m.renderElements.Observe(float64(r.Elements))

	if status == StatusImproper {
		m.improperTotal.WithLabelValues(Code(r.Err)).Inc()
	}
	if r.Err == nil && r.Element.Pending() {
		m.waitingTotal.Inc()
	}
}

// Status classifies a render error into a low-cardinality label.
func Status(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, dsl.ErrImproperRender):
		return StatusImproper
	case errors.Is(err, dsl.ErrNotQuiet):
		return StatusNotQuiet
	default:
		return StatusError
	}
}

// Code returns the error code of a coded error, or "" for other errors.
func Code(err error) string {
	var e *errors.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
