package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"
)

// httpServer exposes the on-demand endpoints: POST /emit/{category} emits a
// single event of the named category outside the scheduler's rotation, and
// GET /healthz answers liveness probes. The handler owns its own Generator so
// requests never race the scheduler's random source; the mutex serializes
// overlapping requests, since a Generator's random source is single-threaded.
type httpServer struct {
	mut  sync.Mutex
	gen  *Generator
	sink Sink
	log  Logger
	srv  *http.Server
}

func newHTTPServer(log Logger, addr string, gen *Generator, sink Sink) *httpServer {
	h := &httpServer{gen: gen, sink: sink, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/emit/", h.handleEmit)
	h.srv = &http.Server{Addr: addr, Handler: mux}
	return h
}

func (h *httpServer) start() {
	go func() {
		h.log.Info("http listener on %s\n", h.srv.Addr)
		if err := h.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.log.Error("http server error: %v\n", err)
		}
	}()
}

func (h *httpServer) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := h.srv.Shutdown(ctx); err != nil {
		h.log.Error("error during http server shutdown: %v\n", err)
	}
}

func (h *httpServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *httpServer) handleEmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/emit/")
	cat, ok := ParseCategory(name)
	if !ok {
		http.Error(w, "unknown category "+name, http.StatusNotFound)
		return
	}

	h.mut.Lock()
	ev := h.gen.Generate(cat)
	h.mut.Unlock()
	if err := h.sink.Emit(r.Context(), ev); err != nil {
		h.sink.ReportFailure(r.Context(), err)
		http.Error(w, "emit failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"category": ev.Category.String(),
		"severity": ev.Severity.String(),
		"message":  ev.Message,
	})
}
