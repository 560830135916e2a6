// Package middleware provides observability middleware for server renders.
//
// Both constructors return an ssr.Middleware:
//
//	o := ssr.New(states, ssr.Options{
//		Middleware: []ssr.Middleware{
//			middleware.OpenTelemetry(),
//			middleware.Prometheus(middleware.WithNamespace("site")),
//		},
//	})
//
// # Prometheus Metrics
//
//   - isoview_renders_total{state,status}
//   - isoview_render_duration_seconds{state}
//   - isoview_render_errors_total{state,error_type}
//   - isoview_stylesheets_collected_total
//
// Expose them with promhttp.Handler(); pkg/server mounts it at /metrics.
//
// # OpenTelemetry
//
// One span per render, carrying the state, request id and resulting path.
// The tracer comes from the global provider unless WithTracerProvider is
// given. The span context is passed to the wrapped render so resolve hooks
// can start child spans.
package middleware
