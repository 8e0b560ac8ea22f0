package main

// loggen continuously emits synthetic structured log events to exercise an
// observability pipeline end to end (collection, storage, alerting,
// visualization). It rotates through eight event categories in a fixed order:
//
//	info, warning, error, debug, performance, security, business, system
//
// and synthesizes a plausible payload for each from built-in catalogs of
// users, operations, services, and other reference values. Some categories
// deliberately embed synthetic faults (an error event always carries one, a
// payment event is declined about 3% of the time) so that downstream alerting
// has something to chew on.
//
// One event is produced per tick. The normal wait between ticks is 5 seconds;
// if a tick fails for real (the sink is unreachable, say) the failure is
// recorded and the next tick waits a 10-second cooldown instead. A bad tick
// never stops the loop.
//
// Events can be sent as OTLP logs with correlated traces and metrics, as
// Honeycomb events, or printed to stdout for local runs. The payloads are
// seeded from the dataset name by default, so two runs with the same seed
// produce the same sequence of field values.
//
// An optional HTTP listener exposes on-demand endpoints: POST /emit/{category}
// emits a single event of that category outside the rotation, and
// GET /healthz answers liveness probes.
//
// cmd/logsink is a small OTLP/HTTP log receiver that counts what it is sent;
// point loggen at it to verify a pipeline without a real backend.
