package main

import "testing"

func newTestGenerator(seed string) *Generator {
	return NewGenerator(DefaultCatalog(), NewRng(seed))
}

func TestParseCategoryRoundTrip(t *testing.T) {
	for i := 0; i < NumCategories; i++ {
		cat := Category(i)
		got, ok := ParseCategory(cat.String())
		if !ok || got != cat {
			t.Errorf("ParseCategory(%q) = %v, %v", cat.String(), got, ok)
		}
	}
	if _, ok := ParseCategory("bogus"); ok {
		t.Error("ParseCategory accepted an unknown name")
	}
}

func TestGenerateTagsEventsWithTheirCategory(t *testing.T) {
	gen := newTestGenerator("tags")
	for i := 0; i < NumCategories; i++ {
		cat := Category(i)
		for j := 0; j < 50; j++ {
			if ev := gen.Generate(cat); ev.Category != cat {
				t.Fatalf("Generate(%s) produced an event tagged %s", cat, ev.Category)
			}
		}
	}
}

func TestErrorEventsAlwaysCarryAFault(t *testing.T) {
	gen := newTestGenerator("errors")
	for i := 0; i < 1000; i++ {
		ev := gen.Generate(CategoryError)
		if ev.Severity != SeverityError {
			t.Fatalf("error event reported severity %s", ev.Severity)
		}
		if ev.Fault == nil || ev.Fault.Kind == "" || ev.Fault.Message == "" {
			t.Fatalf("error event missing fault: %+v", ev)
		}
	}
}

func TestDebugEventsNeverCarryAFault(t *testing.T) {
	gen := newTestGenerator("debug")
	for i := 0; i < 1000; i++ {
		ev := gen.Generate(CategoryDebug)
		if ev.Severity != SeverityDebug {
			t.Fatalf("debug event reported severity %s", ev.Severity)
		}
		if ev.Fault != nil {
			t.Fatalf("debug event carried a fault: %+v", ev.Fault)
		}
	}
}

func TestPerfSeverityClassification(t *testing.T) {
	cases := []struct {
		durationMs int64
		want       Severity
	}{
		{50, SeverityDebug},
		{999, SeverityDebug},
		{1000, SeverityInfo},
		{1500, SeverityInfo},
		{2000, SeverityInfo},
		{2001, SeverityWarning},
		{2999, SeverityWarning},
	}
	for _, c := range cases {
		if got := perfSeverity(c.durationMs); got != c.want {
			t.Errorf("perfSeverity(%d) = %s, want %s", c.durationMs, got, c.want)
		}
	}
}

func TestPerformanceSeverityMatchesDuration(t *testing.T) {
	gen := newTestGenerator("perf")
	for i := 0; i < 10000; i++ {
		ev := gen.Generate(CategoryPerformance)
		duration, ok := ev.Fields["duration_ms"].(int64)
		if !ok {
			t.Fatalf("performance event missing duration_ms: %+v", ev.Fields)
		}
		if ev.Severity != perfSeverity(duration) {
			t.Fatalf("duration %dms reported as %s", duration, ev.Severity)
		}
	}
}

func TestSecuritySeverityByScenario(t *testing.T) {
	warning := map[string]bool{
		"failed login attempt": true,
		"permission denied":    true,
	}
	gen := newTestGenerator("security")
	for i := 0; i < 1000; i++ {
		ev := gen.Generate(CategorySecurity)
		want := SeverityInfo
		if warning[ev.Message] {
			want = SeverityWarning
		}
		if ev.Severity != want {
			t.Fatalf("%q reported as %s, want %s", ev.Message, ev.Severity, want)
		}
	}
}

func TestSystemSeverityByScenario(t *testing.T) {
	want := map[string]Severity{
		"health check passed":         SeverityInfo,
		"scheduled job completed":     SeverityInfo,
		"resource threshold breached": SeverityWarning,
		"configuration reloaded":      SeverityInfo,
		"connection pool status":      SeverityDebug,
	}
	gen := newTestGenerator("system")
	for i := 0; i < 1000; i++ {
		ev := gen.Generate(CategorySystem)
		w, ok := want[ev.Message]
		if !ok {
			t.Fatalf("unexpected system scenario %q", ev.Message)
		}
		if ev.Severity != w {
			t.Fatalf("%q reported as %s, want %s", ev.Message, ev.Severity, w)
		}
	}
}

func TestWarningThresholdsAreRangesNotConstants(t *testing.T) {
	gen := newTestGenerator("warnings")
	memoryValues := map[int64]bool{}
	for i := 0; i < 2000; i++ {
		ev := gen.Generate(CategoryWarning)
		if ev.Severity != SeverityWarning {
			t.Fatalf("warning event reported severity %s", ev.Severity)
		}
		if ev.Message != "memory usage above threshold" {
			continue
		}
		pct, ok := ev.Fields["memory_pct"].(int64)
		if !ok {
			t.Fatalf("memory warning missing memory_pct: %+v", ev.Fields)
		}
		if pct < 85 || pct >= 97 {
			t.Fatalf("memory_pct %d outside documented range [85,97)", pct)
		}
		memoryValues[pct] = true
	}
	if len(memoryValues) < 2 {
		t.Fatalf("memory_pct never varied; got values %v", memoryValues)
	}
}

func TestPaymentDeclineRateConvergesToThreePercent(t *testing.T) {
	gen := newTestGenerator("payments")
	var payments, declined int
	for payments < 100000 {
		ev := gen.Generate(CategoryBusiness)
		status, ok := ev.Fields["status"].(string)
		if !ok {
			continue // not the payment scenario
		}
		payments++
		if status == "declined" {
			declined++
			if ev.Severity != SeverityError {
				t.Fatalf("declined payment reported as %s", ev.Severity)
			}
			if ev.Fault == nil {
				t.Fatal("declined payment missing fault")
			}
		} else {
			if ev.Severity != SeverityInfo {
				t.Fatalf("approved payment reported as %s", ev.Severity)
			}
			if ev.Fault != nil {
				t.Fatalf("approved payment carried a fault: %+v", ev.Fault)
			}
		}
	}
	rate := float64(declined) / float64(payments)
	if rate < 0.025 || rate > 0.035 {
		t.Fatalf("decline rate %.4f outside 0.03 +/- 0.005 over %d payments", rate, payments)
	}
}
