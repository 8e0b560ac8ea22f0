package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/encoding/gzip"
)

// make sure it implements Sink and the optional span capability
var _ Sink = (*SinkOTel)(nil)
var _ Annotator = (*SinkOTel)(nil)

// SinkOTel is the full OTel pipeline: events become OTLP log records, each
// tick gets a span, and emission counts and latency are recorded as metrics.
// Traces and metrics are bootstrapped through otelconfig; the log provider is
// wired explicitly since otelconfig doesn't cover logs.
type SinkOTel struct {
	log      Logger
	tracer   trace.Tracer
	logger   otellog.Logger
	provider *sdklog.LoggerProvider
	shutdown func()

	eventsTotal   metric.Int64Counter
	failuresTotal metric.Int64Counter
	emitLatency   metric.Float64Histogram
}

func NewSinkOTel(log Logger, opts *Options) *SinkOTel {
	runID := uuid.NewString()

	headers := map[string]string{}
	if opts.Telemetry.APIKey != "" {
		headers["x-honeycomb-team"] = opts.Telemetry.APIKey
	}

	protocol := otelconfig.ProtocolGRPC
	if opts.Output.Protocol == "http" {
		protocol = otelconfig.ProtocolHTTPProto
	}
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(opts.Telemetry.Dataset),
		otelconfig.WithServiceVersion(ResourceVersion),
		otelconfig.WithExporterProtocol(protocol),
		otelconfig.WithExporterEndpoint(opts.apihost.Host),
		otelconfig.WithExporterInsecure(opts.Telemetry.Insecure),
		otelconfig.WithHeaders(headers),
		otelconfig.WithResourceAttributes(map[string]string{"run.id": runID}),
	)
	if err != nil {
		log.Fatal("failure configuring otel: %v\n", err)
	}

	ctx := context.Background()
	var exporter sdklog.Exporter
	switch opts.Output.Protocol {
	case "grpc":
		lopts := []otlploggrpc.Option{
			otlploggrpc.WithEndpoint(opts.apihost.Host),
			otlploggrpc.WithHeaders(headers),
			otlploggrpc.WithCompressor(gzip.Name),
		}
		if opts.Telemetry.Insecure {
			lopts = append(lopts, otlploggrpc.WithInsecure())
		}
		exporter, err = otlploggrpc.New(ctx, lopts...)
	case "http":
		lopts := []otlploghttp.Option{
			otlploghttp.WithEndpoint(opts.apihost.Host),
			otlploghttp.WithHeaders(headers),
			otlploghttp.WithCompression(otlploghttp.GzipCompression),
		}
		if opts.Telemetry.Insecure {
			lopts = append(lopts, otlploghttp.WithInsecure())
		}
		exporter, err = otlploghttp.New(ctx, lopts...)
	default:
		log.Fatal("unknown protocol: %s\n", opts.Output.Protocol)
	}
	if err != nil {
		log.Fatal("failure configuring otel log exporter: %v\n", err)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(resource.NewWithAttributes(semconv.SchemaURL,
			semconv.ServiceName(opts.Telemetry.Dataset),
			semconv.ServiceVersion(ResourceVersion),
			attribute.String("run.id", runID),
		)),
	)
	global.SetLoggerProvider(provider)

	meter := otel.Meter(ResourceLibrary)
	eventsTotal, err := meter.Int64Counter("loggen_events_total",
		metric.WithDescription("Total synthetic events emitted"))
	if err != nil {
		log.Fatal("failure creating metric instrument: %v\n", err)
	}
	failuresTotal, err := meter.Int64Counter("loggen_failures_total",
		metric.WithDescription("Total generation failures"))
	if err != nil {
		log.Fatal("failure creating metric instrument: %v\n", err)
	}
	emitLatency, err := meter.Float64Histogram("loggen_emit_latency_seconds",
		metric.WithDescription("Latency of emitting one event"))
	if err != nil {
		log.Fatal("failure creating metric instrument: %v\n", err)
	}

	return &SinkOTel{
		log:           log,
		tracer:        otel.Tracer(ResourceLibrary, trace.WithInstrumentationVersion(ResourceVersion)),
		logger:        provider.Logger(ResourceLibrary),
		provider:      provider,
		shutdown:      otelShutdown,
		eventsTotal:   eventsTotal,
		failuresTotal: failuresTotal,
		emitLatency:   emitLatency,
	}
}

func (t *SinkOTel) Emit(ctx context.Context, ev *Event) error {
	start := time.Now()

	var rec otellog.Record
	rec.SetTimestamp(start)
	rec.SetSeverity(otelSeverity(ev.Severity))
	rec.SetSeverityText(ev.Severity.String())
	rec.SetBody(otellog.StringValue(ev.Message))
	rec.AddAttributes(otellog.String("category", ev.Category.String()))
	for k, v := range ev.Fields {
		rec.AddAttributes(logAttr(k, v))
	}
	if ev.Fault != nil {
		rec.AddAttributes(
			otellog.String("exception.type", ev.Fault.Kind),
			otellog.String("exception.message", ev.Fault.Message),
		)
		span := trace.SpanFromContext(ctx)
		span.AddEvent("exception", trace.WithAttributes(
			attribute.String("exception.type", ev.Fault.Kind),
			attribute.String("exception.message", ev.Fault.Message),
			attribute.Bool("exception.escaped", false),
		))
	}
	t.logger.Emit(ctx, rec)

	attrs := metric.WithAttributes(
		attribute.String("category", ev.Category.String()),
		attribute.String("severity", ev.Severity.String()),
	)
	t.eventsTotal.Add(ctx, 1, attrs)
	t.emitLatency.Record(ctx, time.Since(start).Seconds(), attrs)
	return nil
}

func (t *SinkOTel) ReportFailure(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var rec otellog.Record
	rec.SetTimestamp(time.Now())
	rec.SetSeverity(otellog.SeverityError)
	rec.SetSeverityText(SeverityError.String())
	rec.SetBody(otellog.StringValue("event generation failed"))
	rec.AddAttributes(otellog.String("error", err.Error()))
	t.logger.Emit(ctx, rec)

	t.failuresTotal.Add(ctx, 1)
}

func (t *SinkOTel) WithSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, func() { span.End() }
}

func (t *SinkOTel) Close() {
	if err := t.provider.Shutdown(context.Background()); err != nil {
		t.log.Error("error shutting down otel log provider: %v\n", err)
	}
	t.shutdown()
}

func otelSeverity(s Severity) otellog.Severity {
	switch s {
	case SeverityDebug:
		return otellog.SeverityDebug
	case SeverityInfo:
		return otellog.SeverityInfo
	case SeverityWarning:
		return otellog.SeverityWarn
	case SeverityError:
		return otellog.SeverityError
	default:
		return otellog.SeverityInfo
	}
}

func logAttr(key string, val any) otellog.KeyValue {
	switch v := val.(type) {
	case int:
		return otellog.Int64(key, int64(v))
	case int64:
		return otellog.Int64(key, v)
	case float64:
		return otellog.Float64(key, v)
	case string:
		return otellog.String(key, v)
	case bool:
		return otellog.Bool(key, v)
	default:
		panic(fmt.Sprintf("unknown type %T for %s -- implementation error in sink_otel.go", v, key))
	}
}
