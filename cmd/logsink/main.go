package main

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	collectorlogs "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Options defines the command line arguments
type Options struct {
	Port int `long:"port" description:"Port number to listen on for HTTP" default:"4318"`
}

// LogServer counts incoming OTLP log records by severity so a loggen run can
// be verified without a real backend.
type LogServer struct {
	mu         sync.Mutex
	bySeverity map[string]int
	total      int
	rate       *LogRateTracker
}

func NewLogServer() *LogServer {
	return &LogServer{
		bySeverity: make(map[string]int),
		rate:       NewLogRateTracker(),
	}
}

// ProcessLogsRequest tallies every record in the request
func (s *LogServer) ProcessLogsRequest(req *collectorlogs.ExportLogsServiceRequest) {
	count := 0
	s.mu.Lock()
	for _, resource := range req.GetResourceLogs() {
		for _, scope := range resource.GetScopeLogs() {
			for _, rec := range scope.GetLogRecords() {
				sev := rec.GetSeverityText()
				if sev == "" {
					sev = rec.GetSeverityNumber().String()
				}
				s.bySeverity[sev]++
				s.total++
				count++
			}
		}
	}
	s.mu.Unlock()
	s.rate.TrackRecords(count)
}

func (s *LogServer) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	severities := make([]string, 0, len(s.bySeverity))
	for sev := range s.bySeverity {
		severities = append(severities, sev)
	}
	sort.Strings(severities)
	out := fmt.Sprintf("%d log records received this session\n", s.total)
	for _, sev := range severities {
		out += fmt.Sprintf("  %-8s %d\n", sev, s.bySeverity[sev])
	}
	return out
}

func initHTTPReceiver(ctx context.Context, opts Options, ls *LogServer) error {
	mux := http.NewServeMux()

	// Handler for OTLP logs endpoint
	mux.HandleFunc("/v1/logs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var reader io.ReadCloser = r.Body
		switch r.Header.Get("Content-Encoding") {
		case "gzip":
			var err error
			reader, err = gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, "Failed to decompress gzip data: "+err.Error(), http.StatusBadRequest)
				return
			}
			defer reader.Close()
		}
		body, err := io.ReadAll(reader)
		if err != nil {
			http.Error(w, "Error reading request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		var logsReq collectorlogs.ExportLogsServiceRequest

		// Process based on content type
		switch r.Header.Get("Content-Type") {
		case "application/json":
			if err := protojson.Unmarshal(body, &logsReq); err != nil {
				http.Error(w, "Invalid JSON data", http.StatusBadRequest)
				return
			}
		default:
			// Default to protobuf if content type is not specified
			if err := proto.Unmarshal(body, &logsReq); err != nil {
				http.Error(w, "Invalid protobuf data", http.StatusBadRequest)
				return
			}
		}

		ls.ProcessLogsRequest(&logsReq)

		// Return empty success response
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	})

	// Create HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: mux,
	}

	// Start the server in a goroutine
	go func() {
		log.Printf("HTTP server listening on port %d", opts.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Handle shutdown
	go func() {
		<-ctx.Done()
		log.Println("Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during server shutdown: %v", err)
		}
	}()

	return nil
}

func main() {
	var opts Options

	parser := flags.NewParser(&opts, flags.Default)
	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("Error parsing flags: %v", err)
	}

	log.Printf("Starting log sink server on port %d\n", opts.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ls := NewLogServer()

	if err := initHTTPReceiver(ctx, opts, ls); err != nil {
		log.Fatalf("Failed to start HTTP receiver: %v", err)
	}

	// Wait for termination signal
	<-ctx.Done()

	fmt.Printf("\n%s", ls.Summary())
	log.Println("Shutting down gracefully...")
}
