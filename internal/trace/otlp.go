// Package trace wires OpenTelemetry tracing for callback dispatches.
package trace

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultServiceName is reported when no service name is configured.
const DefaultServiceName = "launchdash"

// InstrumentationName names the tracer used for dashboard spans.
const InstrumentationName = "launchdash/dashboard"

// Options configures the provider.
type Options struct {
	// Endpoint is the OTLP/HTTP collector host:port. Empty disables export.
	Endpoint    string
	ServiceName string
	// Insecure sends spans over plain HTTP.
	Insecure bool
}

// Provider owns the tracer used by the dashboard.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
	enabled  bool
}

// NewProvider creates an OTLP-backed provider if opts.Endpoint is set.
// Otherwise it returns a provider whose tracer records nothing.
func NewProvider(ctx context.Context, opts Options) (*Provider, error) {
	if opts.Endpoint == "" {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(InstrumentationName)}, nil
	}

	clientOpts, err := endpointOptions(opts.Endpoint, opts.Insecure)
	if err != nil {
		return nil, err
	}
	exporter, err := otlptracehttp.New(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	return FromSDK(sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)), nil
}

// tracesPath is the OTLP/HTTP traces signal path.
const tracesPath = "/v1/traces"

// endpointOptions accepts either a bare host:port or a collector base URL
// such as http://collector:4318. A URL's path gets the traces path appended
// unless it already ends with it; its scheme decides TLS.
func endpointOptions(endpoint string, insecure bool) ([]otlptracehttp.Option, error) {
	if !strings.Contains(endpoint, "://") {
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
		if insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return opts, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse otlp endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("otlp endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("otlp endpoint %q: missing host", endpoint)
	}
	if !strings.HasSuffix(u.Path, tracesPath) {
		u.Path = strings.TrimSuffix(u.Path, "/") + tracesPath
	}
	return []otlptracehttp.Option{otlptracehttp.WithEndpointURL(u.String())}, nil
}

// FromSDK wraps an existing SDK tracer provider.
func FromSDK(tp *sdktrace.TracerProvider) *Provider {
	return &Provider{
		provider: tp,
		tracer:   tp.Tracer(InstrumentationName),
		enabled:  true,
	}
}

// Enabled reports whether spans are exported anywhere.
func (p *Provider) Enabled() bool {
	return p != nil && p.enabled
}

// Tracer returns the dashboard tracer. A nil Provider yields a no-op tracer.
func (p *Provider) Tracer() oteltrace.Tracer {
	if p == nil {
		return noop.NewTracerProvider().Tracer(InstrumentationName)
	}
	return p.tracer
}

// Attributes maps loosely named keys into the launchdash.* namespace.
func Attributes(kv map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(kv))
	for k, v := range kv {
		var key string
		switch k {
		case "output":
			key = "launchdash.callback.output"
		case "site":
			key = "launchdash.input.site"
		case "payload_range":
			key = "launchdash.input.payload_range"
		default:
			key = "launchdash." + k
		}
		attrs = append(attrs, attribute.String(key, v))
	}
	return attrs
}

// Shutdown flushes and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
