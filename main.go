package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/goware/urlx"
	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

var ResourceLibrary = "loggen"
var ResourceVersion = "dev"

type Options struct {
	Telemetry struct {
		Host     string `long:"host" description:"the url of the host to receive the telemetry (or honeycomb, dogfood, local)" default:"local"`
		Insecure bool   `long:"insecure" description:"use this for insecure http (not https) connections" yaml:",omitempty"`
		Dataset  string `long:"dataset" description:"service name under which events are sent" env:"LOGGEN_DATASET" default:"loggen"`
		APIKey   string `long:"apikey" description:"the honeycomb API key(*)" env:"HONEYCOMB_API_KEY" yaml:"-"`
	} `group:"Telemetry Options"`
	Cadence struct {
		Interval time.Duration `long:"interval" description:"normal wait between ticks" default:"5s"`
		Cooldown time.Duration `long:"cooldown" description:"wait after a tick fails" default:"10s"`
	} `group:"Cadence Options"`
	Quantity struct {
		TickCount int64         `long:"tickcount" description:"the maximum number of ticks to run (0 means no limit)" default:"0" yaml:",omitempty"`
		RunTime   time.Duration `long:"runtime" description:"the maximum time to spend generating events (0 means no limit)" default:"0s" yaml:",omitempty"`
	} `group:"Quantity Options"`
	Output struct {
		Sender   string `long:"sender" description:"type of sender" choice:"otel" choice:"honeycomb" choice:"print" choice:"dummy" default:"print"`
		Protocol string `long:"protocol" description:"for otel only, protocol to use" choice:"grpc" choice:"http" default:"grpc"`
	} `group:"Output Options"`
	Server struct {
		Listen string `long:"listen" description:"address for the on-demand HTTP endpoints (empty disables them)" default:"" yaml:",omitempty"`
	} `group:"Server Options"`
	Global struct {
		LogLevel  string `long:"loglevel" description:"level of logging" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"warn"`
		DebugPort int    `long:"debugport" description:"port to listen on for pprof(*)" default:"-1" yaml:"-"`
		Seed      string `long:"seed" description:"string seed for the payload random number generator (defaults to dataset name)" yaml:",omitempty"`
		Config    string `long:"config" description:"name of config file to load(*)" default:"" yaml:"-"`
		WriteCfg  string `long:"writecfg" description:"write effective YAML config to the specified output file and quit(*)" default:"" yaml:"-"`
	} `group:"Global Options"`
	apihost *url.URL
}

func newOptions() *Options {
	return &Options{}
}

func (o *Options) CopyStarredFieldsFrom(other *Options) {
	o.Telemetry.APIKey = other.Telemetry.APIKey
	o.Global.DebugPort = other.Global.DebugPort
	o.Global.Config = other.Global.Config
	o.Global.WriteCfg = other.Global.WriteCfg
}

func (o *Options) DebugLevel() int {
	switch o.Global.LogLevel {
	case "debug":
		return 3
	case "info":
		return 2
	case "warn":
		return 1
	case "error":
		return 0
	default:
		return 0
	}
}

// parses the host information and returns a cleaned-up version to make
// it easier to make sure that things are properly specified
// exits if it can't make sense of it
func parseHost(log Logger, host string, insecure bool) *url.URL {
	switch host {
	case "honeycomb":
		host = "https://api.honeycomb.io:443"
	case "dogfood":
		host = "https://api-dogfood.honeycomb.io:443"
	case "local":
		host = "http://localhost:4317"
	default:
	}

	// if the scheme is not specified, fall back to the value of the insecure flag
	defaultScheme := "https"
	if insecure {
		defaultScheme = "http"
	}
	u, err := urlx.ParseWithDefaultScheme(host, defaultScheme)
	if err != nil {
		log.Fatal("unable to parse host: %s\n", err)
	}
	port := u.Port()
	if port == "" {
		u.Host = fmt.Sprintf("%s:4317", u.Host) // default GRPC port
	}
	return u
}

func ReadConfig(opts *Options, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	err = dec.Decode(opts)
	if err != nil {
		return err
	}
	log.Printf("read config from %s\n", filename)
	return nil
}

func WriteConfig(opts *Options, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(f)
	if err := enc.Encode(opts); err != nil {
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote config to %s\n", filename)
	return nil
}

func main() {
	cmdopts := newOptions()

	parser := flags.NewParser(cmdopts, flags.Default)
	parser.Usage = `[OPTIONS]

	loggen continuously emits synthetic structured log events to exercise an
	observability pipeline. It rotates through eight event categories (info,
	warning, error, debug, performance, security, business, system) in fixed
	order, one event per tick, and synthesizes realistic payloads for each.
	Error events always carry a synthetic fault; payments fail about 3% of the
	time; performance events derive their severity from their own duration.

	The normal wait between ticks is 5 seconds. When a tick genuinely fails
	(for example the collector is unreachable), the failure is recorded and
	the next tick waits a longer cooldown instead; the loop itself never stops
	until it is cancelled.

	Events can be sent as OTLP logs (with correlated traces and metrics), as
	Honeycomb events, or printed to stdout. Payload randomness is seeded by
	the dataset name, so identical seeds replay identical field values.

	With --listen, loggen also serves POST /emit/{category} to emit a single
	event on demand and GET /healthz for liveness probes.

	Options can be set in a config file, or on the command line; to specify
	them in the config file, specify it on the command line with
	"--config=FILENAME". The config file format is YAML; see "example.yml".

	Note: If a config file is used, it MUST be used for all options, except
	for the ones marked in the help text with (*) -- these fields CANNOT be
	set in the config file.
	`

	// read the command line and envvars into cmdopts
	_, err := parser.Parse()
	if err != nil {
		switch flagsErr := err.(type) {
		case *flags.Error:
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		log.Fatalf("error reading command line: %v", err)
	}

	opts := newOptions()
	if cmdopts.Global.Config != "" {
		if err := ReadConfig(opts, cmdopts.Global.Config); err != nil {
			log.Fatalf("err %v -- unable to read config file %s", err, cmdopts.Global.Config)
		}
		opts.CopyStarredFieldsFrom(cmdopts)
	} else {
		opts = cmdopts // we don't have to read from a file
	}

	if opts.Global.WriteCfg != "" {
		err := WriteConfig(opts, opts.Global.WriteCfg)
		if err != nil {
			log.Fatalf("unable to write config: %s\n", err)
		}
		os.Exit(0)
	}

	if opts.Global.Seed == "" {
		opts.Global.Seed = opts.Telemetry.Dataset
	}

	if opts.Global.DebugPort > 0 {
		go func() {
			http.ListenAndServe(fmt.Sprintf("localhost:%d", opts.Global.DebugPort), nil)
		}()
	}

	logger := NewLogger(opts.DebugLevel())

	catalog := DefaultCatalog()
	if err := catalog.Validate(); err != nil {
		logger.Fatal("invalid catalog: %v\n", err)
	}

	opts.apihost = parseHost(logger, opts.Telemetry.Host, opts.Telemetry.Insecure)

	logger.Info("host: %s, dataset: %s, apikey: ...%4.4s\n", opts.apihost.String(), opts.Telemetry.Dataset, opts.Telemetry.APIKey)

	var sink Sink
	switch opts.Output.Sender {
	case "dummy":
		sink = NewSinkDummy(logger, opts)
	case "print":
		sink = NewSinkPrint(logger, opts)
	case "honeycomb":
		sink = NewSinkHoneycomb(logger, opts)
	case "otel":
		sink = NewSinkOTel(logger, opts)
	}

	gen := NewGenerator(catalog, NewRng(opts.Global.Seed))
	sched, err := NewScheduler(gen, sink, logger,
		opts.Cadence.Interval, opts.Cadence.Cooldown, opts.Quantity.TickCount)
	if err != nil {
		logger.Fatal("invalid scheduler configuration: %v\n", err)
	}

	// cancel on ctrl-c / SIGTERM, and optionally after the configured runtime
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.Quantity.RunTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Quantity.RunTime)
		defer cancel()
	}

	var server *httpServer
	if opts.Server.Listen != "" {
		// the on-demand handler gets its own generator so requests don't race
		// the scheduler's random source
		server = newHTTPServer(logger, opts.Server.Listen, NewGenerator(catalog, NewRng(opts.Global.Seed+"/http")), sink)
		server.start()
	}

	wg := &sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		sched.Run(ctx)
	}()
	wg.Wait()

	if server != nil {
		server.stop()
	}
	sink.Close()
}
