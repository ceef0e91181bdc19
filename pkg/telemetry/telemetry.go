package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mylxsw/kimi-gateway/pkg/misc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const serviceName = "kimi-gateway"

// DefaultVersion is reported by builds without a version stamp
const DefaultVersion = "dev"

// Telemetry owns the tracer provider and the file traces are written to
type Telemetry struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	closer   io.Closer
}

// Tracer returns the tracer used for upstream calls
func (t *Telemetry) Tracer() trace.Tracer {
	return t.tracer
}

// Shutdown flushes pending spans and closes the trace file
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}

	if err := t.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown tracer provider failed: %w", err)
	}

	return t.closer.Close()
}

// Noop returns a Telemetry that records nothing
func Noop() *Telemetry {
	return &Telemetry{tracer: noop.NewTracerProvider().Tracer(serviceName)}
}

// newResource describes the service, an unstamped build reports DefaultVersion
func newResource(ctx context.Context, version string) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(misc.Default(version, DefaultVersion)),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource failed: %w", err)
	}

	return res, nil
}

// New exports traces to tracePath, rotated by size. An empty tracePath disables tracing.
func New(ctx context.Context, tracePath, version string) (*Telemetry, error) {
	if tracePath == "" {
		return Noop(), nil
	}

	if err := os.MkdirAll(filepath.Dir(tracePath), 0755); err != nil {
		return nil, fmt.Errorf("create trace directory failed: %w", err)
	}

	res, err := newResource(ctx, version)
	if err != nil {
		return nil, err
	}

	traceFile := &lumberjack.Logger{
		Filename:   tracePath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(traceFile))
	if err != nil {
		return nil, fmt.Errorf("create trace exporter failed: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return &Telemetry{
		tracer:   tp.Tracer(serviceName),
		provider: tp,
		closer:   traceFile,
	}, nil
}
