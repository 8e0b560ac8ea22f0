package main

import (
	"path/filepath"
	"testing"
	"time"
)

func TestConfigRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "cfg.yml")

	opts := newOptions()
	opts.Telemetry.Host = "collector.internal"
	opts.Telemetry.Dataset = "loggen-test"
	opts.Telemetry.APIKey = "secret"
	opts.Cadence.Interval = 7 * time.Second
	opts.Cadence.Cooldown = 14 * time.Second
	opts.Quantity.TickCount = 42
	opts.Output.Sender = "dummy"
	opts.Global.Seed = "roundtrip"

	if err := WriteConfig(opts, filename); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	got := newOptions()
	if err := ReadConfig(got, filename); err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}

	if got.Telemetry.Host != opts.Telemetry.Host {
		t.Errorf("host = %q, want %q", got.Telemetry.Host, opts.Telemetry.Host)
	}
	if got.Cadence.Interval != opts.Cadence.Interval {
		t.Errorf("interval = %v, want %v", got.Cadence.Interval, opts.Cadence.Interval)
	}
	if got.Cadence.Cooldown != opts.Cadence.Cooldown {
		t.Errorf("cooldown = %v, want %v", got.Cadence.Cooldown, opts.Cadence.Cooldown)
	}
	if got.Quantity.TickCount != opts.Quantity.TickCount {
		t.Errorf("tickcount = %d, want %d", got.Quantity.TickCount, opts.Quantity.TickCount)
	}
	if got.Output.Sender != opts.Output.Sender {
		t.Errorf("sender = %q, want %q", got.Output.Sender, opts.Output.Sender)
	}
	if got.Global.Seed != opts.Global.Seed {
		t.Errorf("seed = %q, want %q", got.Global.Seed, opts.Global.Seed)
	}
	// the API key is never written to the config file
	if got.Telemetry.APIKey != "" {
		t.Errorf("apikey leaked into the config file: %q", got.Telemetry.APIKey)
	}
}

func TestCopyStarredFieldsFrom(t *testing.T) {
	cmdopts := newOptions()
	cmdopts.Telemetry.APIKey = "key-from-cli"
	cmdopts.Global.DebugPort = 6060
	cmdopts.Global.Config = "cfg.yml"
	cmdopts.Global.WriteCfg = "out.yml"

	opts := newOptions()
	opts.Telemetry.Dataset = "from-file"
	opts.CopyStarredFieldsFrom(cmdopts)

	if opts.Telemetry.APIKey != "key-from-cli" {
		t.Errorf("apikey = %q", opts.Telemetry.APIKey)
	}
	if opts.Global.DebugPort != 6060 {
		t.Errorf("debugport = %d", opts.Global.DebugPort)
	}
	if opts.Global.Config != "cfg.yml" || opts.Global.WriteCfg != "out.yml" {
		t.Errorf("config fields not copied: %q %q", opts.Global.Config, opts.Global.WriteCfg)
	}
	if opts.Telemetry.Dataset != "from-file" {
		t.Errorf("non-starred field overwritten: %q", opts.Telemetry.Dataset)
	}
}

func TestParseHost(t *testing.T) {
	log := NewLogger(0)
	cases := []struct {
		host     string
		insecure bool
		want     string
	}{
		{"local", false, "http://localhost:4317"},
		{"honeycomb", false, "https://api.honeycomb.io:443"},
		{"collector.example.com", false, "https://collector.example.com:4317"},
		{"collector.example.com", true, "http://collector.example.com:4317"},
		{"collector.example.com:4318", true, "http://collector.example.com:4318"},
		{"https://collector.example.com", true, "https://collector.example.com:4317"},
	}
	for _, c := range cases {
		u := parseHost(log, c.host, c.insecure)
		if u.String() != c.want {
			t.Errorf("parseHost(%q, %v) = %q, want %q", c.host, c.insecure, u.String(), c.want)
		}
	}
}

func TestDebugLevel(t *testing.T) {
	cases := map[string]int{"debug": 3, "info": 2, "warn": 1, "error": 0, "": 0}
	for level, want := range cases {
		o := newOptions()
		o.Global.LogLevel = level
		if got := o.DebugLevel(); got != want {
			t.Errorf("DebugLevel(%q) = %d, want %d", level, got, want)
		}
	}
}
