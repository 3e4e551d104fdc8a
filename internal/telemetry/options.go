package telemetry

// Options are telemetry collection settings, typically populated from the
// REQPIN_TELEMETRY_* environment variables.
type Options struct {
	// TraceExporter is the trace exporter type: none, console, otlpHttp, otlpGrpc, http.
	TraceExporter string

	// TraceExporterHTTPEndpoint is the endpoint for the http trace exporter.
	TraceExporterHTTPEndpoint string

	// TraceParent is the W3C traceparent value to continue an external trace.
	TraceParent string

	// TraceExporterInsecureEndpoint allows exporting traces over plain HTTP/gRPC.
	TraceExporterInsecureEndpoint bool

	// MetricExporter is the metric exporter type: none, console, otlpHttp, otlpGrpc.
	MetricExporter string

	// MetricExporterInsecureEndpoint allows exporting metrics over plain HTTP/gRPC.
	MetricExporterInsecureEndpoint bool
}
