package main

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// categoryForTick is the rotation: tick n always dispatches category n mod 8,
// regardless of what happened on earlier ticks.
func categoryForTick(n uint64) Category {
	return Category(n % NumCategories)
}

// Scheduler drives the category generators on a fixed cadence. One tick
// produces one event; ticks are strictly sequential, and a failed tick only
// delays the next one, it never stops the loop. The tick counter is scoped to
// the Scheduler instance, so independent schedulers (as in tests) do not
// interfere with each other.
type Scheduler struct {
	gen      *Generator
	sink     Sink
	log      Logger
	interval time.Duration
	cooldown time.Duration
	maxTicks int64
	counter  uint64
}

func NewScheduler(gen *Generator, sink Sink, log Logger, interval, cooldown time.Duration, maxTicks int64) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %v", interval)
	}
	if cooldown <= 0 {
		return nil, fmt.Errorf("cooldown must be positive, got %v", cooldown)
	}
	return &Scheduler{
		gen:      gen,
		sink:     sink,
		log:      log,
		interval: interval,
		cooldown: cooldown,
		maxTicks: maxTicks,
	}, nil
}

// Run executes ticks until ctx is cancelled or maxTicks is reached. The first
// tick starts immediately; the wait between ticks is the only suspension
// point and is where cancellation is observed. Run returning is how the host
// knows the background task is done.
func (s *Scheduler) Run(ctx context.Context) {
	var ticks int64
	for {
		if ctx.Err() != nil {
			s.log.Info("scheduler stopping after %d ticks\n", ticks)
			return
		}

		err := s.tick(ctx)
		ticks++
		if s.maxTicks > 0 && ticks >= s.maxTicks {
			s.log.Info("scheduler finished after %d ticks\n", ticks)
			return
		}

		timer := time.NewTimer(s.nextDelay(err))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("scheduler stopping after %d ticks\n", ticks)
			return
		case <-timer.C:
		}
	}
}

// tick runs one iteration: advance the counter, dispatch the rotated
// category, and report any genuine failure through the sink. The returned
// error is only used to pick the next delay.
func (s *Scheduler) tick(ctx context.Context) error {
	n := s.counter
	s.counter++
	cat := categoryForTick(n)

	err := s.dispatch(ctx, n, cat)
	if err != nil {
		s.log.Error("tick %d (%s) failed: %v\n", n, cat, err)
		s.sink.ReportFailure(ctx, err)
		return err
	}
	s.log.Debug("tick %d emitted %s event\n", n, cat)
	return nil
}

// dispatch generates and emits the event for one tick. Panics from the
// generator or sink are converted to errors so a bad tick cannot take down
// the process.
func (s *Scheduler) dispatch(ctx context.Context, n uint64, cat Category) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tick %d (%s) panicked: %v", n, cat, r)
		}
	}()

	end := func() {}
	if a, ok := s.sink.(Annotator); ok {
		ctx, end = a.WithSpan(ctx, "loggen.tick",
			attribute.String("event.category", cat.String()),
			attribute.Int64("tick.counter", int64(n)),
		)
	}
	defer end()

	return s.sink.Emit(ctx, s.gen.Generate(cat))
}

// nextDelay picks the wait before the next tick: the normal interval after a
// successful tick, the longer cooldown after a failure.
func (s *Scheduler) nextDelay(tickErr error) time.Duration {
	if tickErr != nil {
		return s.cooldown
	}
	return s.interval
}
