package telemetry

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"

	"github.com/reqpin/reqpin/internal/errors"
)

const (
	noneMetricExporterType     metricExporterType = "none"
	consoleMetricExporterType  metricExporterType = "console"
	otlpHTTPMetricExporterType metricExporterType = "otlpHttp"
	otlpGrpcMetricExporterType metricExporterType = "otlpGrpc"

	metricExportInterval = time.Second
)

type metricExporterType string

type Meter struct {
	otelmetric.Meter
	provider      *sdkmetric.MeterProvider
	meterExporter sdkmetric.Exporter
}

// NewMeter creates and configures the metrics collection.
func NewMeter(ctx context.Context, appName, appVersion string, writer io.Writer, opts *Options) (*Meter, error) {
	meterExporter, err := NewMeterExporter(ctx, writer, opts)
	if err != nil {
		return nil, errors.New(err)
	}

	if meterExporter == nil { // no exporter
		return nil, nil
	}

	provider, err := newMeterProvider(meterExporter, appName, appVersion)
	if err != nil {
		return nil, errors.New(err)
	}

	otel.SetMeterProvider(provider)

	meter := &Meter{
		Meter:         provider.Meter(appName),
		provider:      provider,
		meterExporter: meterExporter,
	}

	return meter, nil
}

// newMeterProvider creates a new meter provider with the app version.
func newMeterProvider(exp sdkmetric.Exporter, appName, appVersion string) (*sdkmetric.MeterProvider, error) {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(appName),
			semconv.ServiceVersion(appVersion),
		),
	)
	if err != nil {
		return nil, errors.New(err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(r),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(metricExportInterval))),
	)

	return provider, nil
}

// NewMeterExporter creates a new exporter based on the telemetry options.
func NewMeterExporter(ctx context.Context, writer io.Writer, opts *Options) (sdkmetric.Exporter, error) {
	exporterType := metricExporterType(opts.MetricExporter)
	if exporterType == "" {
		exporterType = noneMetricExporterType
	}

	switch exporterType {
	case otlpHTTPMetricExporterType:
		var config []otlpmetrichttp.Option
		if opts.MetricExporterInsecureEndpoint {
			config = append(config, otlpmetrichttp.WithInsecure())
		}

		return otlpmetrichttp.New(ctx, config...)
	case otlpGrpcMetricExporterType:
		var config []otlpmetricgrpc.Option
		if opts.MetricExporterInsecureEndpoint {
			config = append(config, otlpmetricgrpc.WithInsecure())
		}

		return otlpmetricgrpc.New(ctx, config...)
	case consoleMetricExporterType:
		return stdoutmetric.New(stdoutmetric.WithWriter(writer))
	case noneMetricExporterType:
		return nil, nil
	default:
		return nil, nil
	}
}

// Time collects the execution time of the given function as a histogram metric.
func (meter *Meter) Time(ctx context.Context, name string, attrs map[string]any, fn func(childCtx context.Context) error) error {
	if meter == nil || meter.provider == nil { // invoke function without metrics
		return fn(ctx)
	}

	histogram, err := meter.Int64Histogram(cleanMetricName(name) + "_duration")
	if err != nil {
		return errors.New(err)
	}

	startTime := time.Now()
	fnErr := fn(ctx)
	duration := time.Since(startTime)

	histogram.Record(ctx, duration.Milliseconds(), otelmetric.WithAttributes(mapToAttributes(attrs)...))

	if fnErr != nil {
		meter.Count(ctx, name+"_errors", 1)
	}

	return fnErr
}

// Count adds the given value to the named counter.
func (meter *Meter) Count(ctx context.Context, name string, value int64) {
	if meter == nil || meter.provider == nil {
		return
	}

	counter, err := meter.Int64Counter(cleanMetricName(name) + "_count")
	if err != nil {
		return
	}

	counter.Add(ctx, value)
}
