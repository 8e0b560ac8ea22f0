package main

import "fmt"

// Generator synthesizes one Event per call from the catalog and its own
// random source. Generators never fail: every draw comes from an in-memory
// pool or a numeric range, and a Fault in the result is payload, not an
// error. A Generator is not safe for concurrent use.
type Generator struct {
	catalog *Catalog
	rng     Rng
}

func NewGenerator(catalog *Catalog, rng Rng) *Generator {
	return &Generator{catalog: catalog, rng: rng}
}

// Generate dispatches to the generator for cat.
func (g *Generator) Generate(cat Category) *Event {
	switch cat {
	case CategoryInfo:
		return g.info()
	case CategoryWarning:
		return g.warning()
	case CategoryError:
		return g.errorEvent()
	case CategoryDebug:
		return g.debug()
	case CategoryPerformance:
		return g.performance()
	case CategorySecurity:
		return g.security()
	case CategoryBusiness:
		return g.business()
	case CategorySystem:
		return g.system()
	default:
		panic(fmt.Sprintf("unknown category %d -- implementation error in generators.go", cat))
	}
}

// info models a successful user-triggered operation.
func (g *Generator) info() *Event {
	return &Event{
		Category: CategoryInfo,
		Severity: SeverityInfo,
		Message:  "operation completed",
		Fields: map[string]any{
			"user":        g.rng.Choice(g.catalog.Users),
			"operation":   g.rng.Choice(g.catalog.Operations),
			"service":     g.rng.Choice(g.catalog.Services),
			"request_id":  g.rng.HexString(8),
			"duration_ms": g.rng.Int(50, 500),
			"status":      "success",
		},
	}
}

// warning picks one of five resource-pressure scenarios. Every threshold is a
// range, not a constant, so repeated invocations produce distinct numbers.
func (g *Generator) warning() *Event {
	ev := &Event{Category: CategoryWarning, Severity: SeverityWarning}
	switch g.rng.Intn(5) {
	case 0:
		ev.Message = "memory usage above threshold"
		ev.Fields = map[string]any{
			"service":       g.rng.Choice(g.catalog.Services),
			"memory_pct":    g.rng.Int(85, 97),
			"threshold_pct": int64(80),
		}
	case 1:
		ev.Message = "slow query detected"
		ev.Fields = map[string]any{
			"database":     g.rng.Choice(g.catalog.Databases),
			"table":        g.rng.Choice(g.catalog.Tables),
			"query_ms":     g.rng.Int(1500, 5000),
			"threshold_ms": int64(1000),
		}
	case 2:
		ev.Message = "approaching rate limit"
		ev.Fields = map[string]any{
			"user":     g.rng.Choice(g.catalog.Users),
			"endpoint": g.rng.Choice(g.catalog.Endpoints),
			"current":  g.rng.Int(80, 95),
			"limit":    int64(100),
		}
	case 3:
		ev.Message = "disk space low"
		ev.Fields = map[string]any{
			"mount":    "/var/data",
			"free_pct": g.rng.Int(5, 15),
		}
	case 4:
		ev.Message = "connection pool nearly exhausted"
		ev.Fields = map[string]any{
			"service":   g.rng.Choice(g.catalog.Services),
			"in_use":    g.rng.Int(85, 98),
			"pool_size": int64(100),
		}
	}
	return ev
}

// errorEvent picks one of four fault scenarios. The fault is synthetic: the
// sink renders it as an attached error, but the tick itself succeeds.
func (g *Generator) errorEvent() *Event {
	ev := &Event{Category: CategoryError, Severity: SeverityError}
	switch g.rng.Intn(4) {
	case 0:
		status := []int64{500, 502, 503, 504}[g.rng.Intn(4)]
		ev.Message = "upstream request failed"
		ev.Fields = map[string]any{
			"endpoint":   g.rng.Choice(g.catalog.Endpoints),
			"status":     status,
			"request_id": g.rng.HexString(8),
		}
		ev.Fault = &Fault{
			Kind:    "UpstreamError",
			Message: fmt.Sprintf("upstream returned HTTP %d", status),
		}
	case 1:
		ev.Message = "database operation timed out"
		ev.Fields = map[string]any{
			"database":   g.rng.Choice(g.catalog.Databases),
			"timeout_ms": int64(30000),
		}
		ev.Fault = &Fault{
			Kind:    "TimeoutError",
			Message: "query exceeded 30s timeout",
		}
	case 2:
		field := []string{"email", "amount", "date", "user_id"}[g.rng.Intn(4)]
		ev.Message = "request validation failed"
		ev.Fields = map[string]any{
			"endpoint": g.rng.Choice(g.catalog.Endpoints),
			"field":    field,
		}
		ev.Fault = &Fault{
			Kind:    "ValidationError",
			Message: fmt.Sprintf("invalid value for field %q", field),
		}
	case 3:
		ev.Message = "unauthorized access attempt"
		ev.Fields = map[string]any{
			"user":     g.rng.Choice(g.catalog.Users),
			"resource": g.rng.Choice(g.catalog.Endpoints),
		}
		ev.Fault = &Fault{
			Kind:    "UnauthorizedError",
			Message: "caller lacks permission for resource",
		}
	}
	return ev
}

// debug emits low-severity internal detail and never carries a fault.
func (g *Generator) debug() *Event {
	ev := &Event{Category: CategoryDebug, Severity: SeverityDebug}
	switch g.rng.Intn(4) {
	case 0:
		ev.Message = "cache lookup"
		ev.Fields = map[string]any{
			"key": g.rng.Choice(g.catalog.CacheKeys) + ":" + g.rng.HexString(6),
			"hit": true,
		}
	case 1:
		ev.Message = "sql statement executed"
		ev.Fields = map[string]any{
			"database":    g.rng.Choice(g.catalog.Databases),
			"statement":   fmt.Sprintf("SELECT * FROM %s WHERE id = ?", g.rng.Choice(g.catalog.Tables)),
			"rows":        g.rng.Int(1, 100),
			"duration_ms": g.rng.Int(1, 50),
		}
	case 2:
		ev.Message = "http request received"
		ev.Fields = map[string]any{
			"method":   []string{"GET", "POST", "PUT", "DELETE"}[g.rng.Intn(4)],
			"endpoint": g.rng.Choice(g.catalog.Endpoints),
		}
	case 3:
		ev.Message = "configuration section loaded"
		ev.Fields = map[string]any{
			"section": g.rng.Choice(g.catalog.ConfigSections),
		}
	}
	return ev
}

// perfSeverity derives the reported severity of a performance event from its
// own synthesized duration. Performance data's urgency comes from the
// payload, not from the category.
func perfSeverity(durationMs int64) Severity {
	switch {
	case durationMs > 2000:
		return SeverityWarning
	case durationMs >= 1000:
		return SeverityInfo
	default:
		return SeverityDebug
	}
}

func (g *Generator) performance() *Event {
	duration := g.rng.Int(50, 3000)
	return &Event{
		Category: CategoryPerformance,
		Severity: perfSeverity(duration),
		Message:  "operation timing",
		Fields: map[string]any{
			"operation":   g.rng.Choice(g.catalog.Operations),
			"service":     g.rng.Choice(g.catalog.Services),
			"duration_ms": duration,
			"cpu_pct":     g.rng.Int(10, 90),
			"memory_mb":   g.rng.Int(100, 1000),
		},
	}
}

// security picks one of five scenarios; failed logins and permission denials
// are promoted to warning severity.
func (g *Generator) security() *Event {
	ev := &Event{Category: CategorySecurity, Severity: SeverityInfo}
	user := g.rng.Choice(g.catalog.Users)
	switch g.rng.Intn(5) {
	case 0:
		ev.Message = "authentication succeeded"
		ev.Fields = map[string]any{
			"user":      user,
			"source_ip": g.rng.IPv4(),
		}
	case 1:
		ev.Severity = SeverityWarning
		ev.Message = "failed login attempt"
		ev.Fields = map[string]any{
			"user":      user,
			"source_ip": g.rng.IPv4(),
			"attempts":  g.rng.Int(1, 6),
		}
	case 2:
		ev.Message = "password changed"
		ev.Fields = map[string]any{
			"user": user,
		}
	case 3:
		ev.Severity = SeverityWarning
		ev.Message = "permission denied"
		ev.Fields = map[string]any{
			"user":     user,
			"resource": g.rng.Choice(g.catalog.Endpoints),
		}
	case 4:
		ev.Message = "session created"
		ev.Fields = map[string]any{
			"user":       user,
			"session_id": g.rng.HexString(16),
		}
	}
	return ev
}

// paymentSuccessPct is the fixed success probability of the payment scenario.
// The value is inherited demo behavior; changing it is a product decision.
const paymentSuccessPct = 97

// business picks one of four scenarios. The payment scenario then makes an
// independent Bernoulli draw: ~3% of payments are declined and reported at
// error severity with a fault attached.
func (g *Generator) business() *Event {
	ev := &Event{Category: CategoryBusiness, Severity: SeverityInfo}
	switch g.rng.Intn(4) {
	case 0:
		ev.Message = "order created"
		ev.Fields = map[string]any{
			"order_id": "ord-" + g.rng.HexString(8),
			"user":     g.rng.Choice(g.catalog.Users),
			"amount":   g.rng.Float(10, 500),
			"items":    g.rng.Int(1, 10),
		}
	case 1:
		approved := g.rng.BoolWithProb(paymentSuccessPct)
		ev.Fields = map[string]any{
			"order_id": "ord-" + g.rng.HexString(8),
			"amount":   g.rng.Float(10, 500),
			"method":   g.rng.Choice(g.catalog.PaymentMethods),
		}
		if approved {
			ev.Message = "payment processed"
			ev.Fields["status"] = "approved"
		} else {
			ev.Severity = SeverityError
			ev.Message = "payment failed"
			ev.Fields["status"] = "declined"
			ev.Fault = &Fault{
				Kind:    "PaymentDeclinedError",
				Message: "payment declined by processor",
			}
		}
	case 2:
		ev.Message = "inventory updated"
		ev.Fields = map[string]any{
			"sku":   "sku-" + g.rng.HexString(6),
			"delta": g.rng.Int(-20, 21),
		}
	case 3:
		ev.Message = "search performed"
		ev.Fields = map[string]any{
			"query":       g.rng.Choice(g.catalog.SearchTerms),
			"results":     g.rng.Int(0, 500),
			"duration_ms": g.rng.Int(10, 200),
		}
	}
	return ev
}

// system picks one of five scenarios. A resource-threshold breach is always a
// warning; pool status is debug detail; the rest are informational.
func (g *Generator) system() *Event {
	ev := &Event{Category: CategorySystem, Severity: SeverityInfo}
	switch g.rng.Intn(5) {
	case 0:
		ev.Message = "health check passed"
		ev.Fields = map[string]any{
			"services_checked": int64(len(g.catalog.Services)),
			"healthy":          true,
		}
	case 1:
		ev.Message = "scheduled job completed"
		ev.Fields = map[string]any{
			"job":         g.rng.Choice(g.catalog.Jobs),
			"duration_ms": g.rng.Int(100, 5000),
		}
	case 2:
		ev.Severity = SeverityWarning
		ev.Message = "resource threshold breached"
		ev.Fields = map[string]any{
			"resource":      g.rng.Choice(g.catalog.Resources),
			"value_pct":     g.rng.Int(90, 100),
			"threshold_pct": int64(85),
		}
	case 3:
		ev.Message = "configuration reloaded"
		ev.Fields = map[string]any{
			"sections": int64(len(g.catalog.ConfigSections)),
		}
	case 4:
		ev.Severity = SeverityDebug
		ev.Message = "connection pool status"
		ev.Fields = map[string]any{
			"service":   g.rng.Choice(g.catalog.Services),
			"in_use":    g.rng.Int(10, 80),
			"pool_size": int64(100),
		}
	}
	return ev
}
