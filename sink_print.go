package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"pgregory.net/rand"
)

// make sure it implements Sink
var _ Sink = (*SinkPrint)(nil)

func ft(ts time.Time) string {
	return ts.Format("15:04:05.000")
}

// randID returns a hex string of l random bytes.
func randID(l int) string {
	id := make([]byte, l)
	for i := 0; i < l; i++ {
		id[i] = byte(rand.Intn(256))
	}
	return fmt.Sprintf("%x", id)
}

// SinkPrint writes events to stdout, one line each, for local runs without a
// collector. The mutex covers the counters; the scheduler and the on-demand
// handler share one sink.
type SinkPrint struct {
	mut      sync.Mutex
	events   int
	failures int
	log      Logger
}

func NewSinkPrint(log Logger, opts *Options) Sink {
	return &SinkPrint{log: log}
}

func (t *SinkPrint) Emit(ctx context.Context, ev *Event) error {
	t.mut.Lock()
	t.events++
	t.mut.Unlock()
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-7s %-11s E:%4.4s %s", ft(time.Now()), strings.ToUpper(ev.Severity.String()), ev.Category, randID(4), ev.Message)
	keys := make([]string, 0, len(ev.Fields))
	for k := range ev.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, ev.Fields[k])
	}
	if ev.Fault != nil {
		fmt.Fprintf(&b, " fault=%s(%q)", ev.Fault.Kind, ev.Fault.Message)
	}
	fmt.Println(b.String())
	return nil
}

func (t *SinkPrint) ReportFailure(ctx context.Context, err error) {
	t.mut.Lock()
	t.failures++
	t.mut.Unlock()
	fmt.Printf("%s FAILURE generation failed: %v\n", ft(time.Now()), err)
}

func (t *SinkPrint) Close() {
	t.log.Warn("sink emitted %d events with %d failures\n", t.events, t.failures)
}
