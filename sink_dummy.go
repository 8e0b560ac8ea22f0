package main

import (
	"context"
	"sync"
)

// SinkDummy counts and discards everything. Useful for dry runs and tests.
type SinkDummy struct {
	mut      sync.Mutex
	events   int
	failures int
	log      Logger
}

// make sure it implements Sink
var _ Sink = (*SinkDummy)(nil)

func NewSinkDummy(log Logger, opts *Options) Sink {
	return &SinkDummy{log: log}
}

func (t *SinkDummy) Emit(ctx context.Context, ev *Event) error {
	t.mut.Lock()
	t.events++
	t.mut.Unlock()
	return nil
}

func (t *SinkDummy) ReportFailure(ctx context.Context, err error) {
	t.mut.Lock()
	t.failures++
	t.mut.Unlock()
}

func (t *SinkDummy) Close() {
	t.log.Info("sink discarded %d events with %d failures\n", t.events, t.failures)
}
