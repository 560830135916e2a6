package middleware

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/isoview/pkg/fragment"
	"github.com/vango-dev/isoview/pkg/ssr"
	"github.com/vango-dev/isoview/pkg/state"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "isoview").
	Namespace string

	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets default to prometheus.DefBuckets.
	Buckets []float64

	// Registry defaults to prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "isoview",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderErrors   *prometheus.CounterVec
	stylesheets    prometheus.Counter
}

// registered holds the collectors created for each registerer, so calls
// sharing a registerer share collectors instead of failing registration.
var (
	registered   = make(map[prometheus.Registerer]*metrics)
	registeredMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of server renders",
			ConstLabels: config.ConstLabels,
		}, []string{"state", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Server render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"state"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of failed server renders",
			ConstLabels: config.ConstLabels,
		}, []string{"state", "error_type"}),

		stylesheets: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "stylesheets_collected_total",
			Help:        "Total number of stylesheets collected from rendered fragments",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus returns middleware that records render counts, durations,
// errors and collected stylesheets.
//
// Collectors are created once per registerer. Namespace, subsystem, const
// labels and buckets take effect on the first call for a registerer; later
// calls with the same registerer reuse its collectors and ignore them.
func Prometheus(opts ...MetricsOption) ssr.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	registeredMu.Lock()
	m, ok := registered[config.Registry]
	if !ok {
		m = initMetrics(config)
		registered[config.Registry] = m
	}
	registeredMu.Unlock()

	return func(next ssr.RenderFunc) ssr.RenderFunc {
		return func(ctx context.Context, req ssr.Request) (*ssr.Result, error) {
			start := time.Now()
			res, err := next(ctx, req)
			m.renderDuration.WithLabelValues(req.State).Observe(time.Since(start).Seconds())

			status := "success"
			if err != nil {
				status = "error"
				m.renderErrors.WithLabelValues(req.State, categorizeError(err)).Inc()
			} else if res != nil {
				m.stylesheets.Add(float64(len(res.Stylesheets)))
			}
			m.rendersTotal.WithLabelValues(req.State, status).Inc()
			return res, err
		}
	}
}

// categorizeError maps err to a low-cardinality label.
func categorizeError(err error) string {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case stderrors.Is(err, context.Canceled):
		return "canceled"
	case stderrors.Is(err, state.ErrStateNotFound):
		return "not_found"
	case stderrors.Is(err, state.ErrMissingParam):
		return "missing_param"
	case stderrors.Is(err, fragment.ErrNoPlaceholder):
		return "no_placeholder"
	case stderrors.Is(err, fragment.ErrNoContent):
		return "no_content"
	case stderrors.Is(err, state.ErrHookPanic):
		return "panic"
	}
	return "internal"
}
