package main

import (
	"context"

	"github.com/honeycombio/beeline-go"
)

// SinkHoneycomb sends each event as a beeline span so existing Honeycomb
// datasets can receive the demo load without an OTel pipeline.
type SinkHoneycomb struct {
	log Logger
}

// make sure it implements Sink
var _ Sink = (*SinkHoneycomb)(nil)

func NewSinkHoneycomb(log Logger, opts *Options) *SinkHoneycomb {
	beeline.Init(beeline.Config{
		WriteKey:    opts.Telemetry.APIKey,
		APIHost:     opts.apihost.String(),
		ServiceName: opts.Telemetry.Dataset,
		Debug:       opts.DebugLevel() > 2,
	})
	return &SinkHoneycomb{log: log}
}

func (t *SinkHoneycomb) Emit(ctx context.Context, ev *Event) error {
	ctx, span := beeline.StartSpan(ctx, ev.Category.String())
	defer span.Send()
	span.AddField("category", ev.Category.String())
	span.AddField("severity", ev.Severity.String())
	span.AddField("message", ev.Message)
	for k, v := range ev.Fields {
		span.AddField(k, v)
	}
	if ev.Fault != nil {
		span.AddField("error", ev.Fault.Kind)
		span.AddField("error_detail", ev.Fault.Message)
	}
	return nil
}

func (t *SinkHoneycomb) ReportFailure(ctx context.Context, err error) {
	_, span := beeline.StartSpan(ctx, "generation_failure")
	defer span.Send()
	span.AddField("error", err.Error())
}

func (t *SinkHoneycomb) Close() {
	beeline.Close()
}
