package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/isoview/internal/errors"
	"github.com/vango-dev/isoview/pkg/ssr"
)

const defaultTracerName = "isoview"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "isoview").
	TracerName string

	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider

	// IncludeParams adds every request parameter as an attribute.
	// Parameters may identify users; disabled by default.
	IncludeParams bool

	// Filter returns false for requests that should not be traced.
	Filter func(req ssr.Request) bool

	// AttributeExtractor adds custom attributes for each traced request.
	AttributeExtractor func(req ssr.Request) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) { c.TracerName = name }
}

// WithTracerProvider sets the provider the tracer is taken from.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) { c.TracerProvider = tp }
}

// WithIncludeParams enables request parameters as span attributes.
func WithIncludeParams(include bool) OTelOption {
	return func(c *OTelConfig) { c.IncludeParams = include }
}

// WithRequestFilter sets a filter for traced requests.
func WithRequestFilter(filter func(req ssr.Request) bool) OTelOption {
	return func(c *OTelConfig) { c.Filter = filter }
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(req ssr.Request) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) { c.AttributeExtractor = extractor }
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{TracerName: defaultTracerName}
}

// OpenTelemetry returns middleware that wraps every render in a span.
func OpenTelemetry(opts ...OTelOption) ssr.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	provider := config.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	tracer := provider.Tracer(config.TracerName)

	return func(next ssr.RenderFunc) ssr.RenderFunc {
		return func(ctx context.Context, req ssr.Request) (*ssr.Result, error) {
			if config.Filter != nil && !config.Filter(req) {
				return next(ctx, req)
			}

			attrs := []attribute.KeyValue{
				attribute.String("isoview.state", req.State),
				attribute.String("isoview.request_id", ssr.RequestID(ctx)),
			}
			if req.PlaceholderID != "" {
				attrs = append(attrs, attribute.String("isoview.placeholder_id", req.PlaceholderID))
			}
			if config.IncludeParams {
				for k, v := range req.Params {
					attrs = append(attrs, attribute.String("isoview.param."+k, v))
				}
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(req)...)
			}

			spanCtx, span := tracer.Start(ctx, formatSpanName(req),
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			res, err := next(spanCtx, req)
			if err != nil {
				span.RecordError(err)
				if code := errors.CodeOf(err); code != "" {
					span.SetAttributes(attribute.String("isoview.error_code", code))
				}
				span.SetStatus(codes.Error, err.Error())
				return res, err
			}

			if res != nil {
				span.SetAttributes(
					attribute.String("isoview.path", res.Path),
					attribute.Int("isoview.stylesheets", len(res.Stylesheets)),
				)
			}
			span.SetStatus(codes.Ok, "")
			return res, nil
		}
	}
}

func formatSpanName(req ssr.Request) string {
	if req.State == "" {
		return "isoview render"
	}
	return "isoview render " + req.State
}
