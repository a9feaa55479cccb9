// Package server runs the local preview: it serves the generated site,
// rebuilds on content changes, and pushes livereload events to open pages.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/langmatrix/internal/logfields"
)

// Server is the preview HTTP server.
type Server struct {
	contentDir string
	siteDir    string
	port       int
	rebuild    func() error

	hub     *reloadHub
	metrics *metrics
}

// New creates a preview server. rebuild regenerates siteDir from contentDir
// and is called once at startup and after every content change.
func New(contentDir, siteDir string, port int, rebuild func() error) *Server {
	m := newMetrics()
	return &Server{
		contentDir: contentDir,
		siteDir:    siteDir,
		port:       port,
		rebuild:    rebuild,
		hub:        newReloadHub(func(n int) { m.reloadClients.Set(float64(n)) }),
		metrics:    m,
	}
}

// Start runs the initial build, the content watcher, and the HTTP server
// until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	s.rebuildAndNotify()

	watchErr := make(chan error, 1)
	go func() { watchErr <- s.watch(ctx) }()

	httpServer := &http.Server{
		Addr:        fmt.Sprintf(":%d", s.port),
		Handler:     s.handler(),
		ReadTimeout: 10 * time.Second,
		// No write timeout: the livereload SSE stream is long-lived.
		IdleTimeout: 300 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- httpServer.ListenAndServe() }()

	slog.Info("Preview server listening", slog.Int("port", s.port), logfields.Output(s.siteDir))

	select {
	case err := <-serveErr:
		return err
	case err := <-watchErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown preview server: %w", err)
	}
	return nil
}

// handler assembles the preview mux: site pages with livereload injection,
// the SSE endpoint, health, and metrics.
func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/livereload", s.hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", s.servePage)
	return s.countRequests(mux)
}

// servePage serves files from the generated site, mapping directory URLs to
// their index.html and injecting the livereload client into HTML pages.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	urlPath := r.URL.Path
	if strings.Contains(urlPath, "..") {
		http.Error(w, "bad path", http.StatusBadRequest)
		return
	}

	filePath := filepath.Join(s.siteDir, filepath.FromSlash(strings.TrimPrefix(urlPath, "/")))
	if strings.HasSuffix(urlPath, "/") || urlPath == "" {
		filePath = filepath.Join(filePath, "index.html")
	}

	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		slog.Error("Failed to read page", logfields.Path(filePath), logfields.Error(err))
		return
	}

	if strings.HasSuffix(filePath, ".html") {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data = injectReloadScript(data)
	}
	_, _ = w.Write(data)
}

// rebuildAndNotify runs one rebuild, records metrics, and notifies clients
// on success. A failed rebuild keeps the previous site on disk.
func (s *Server) rebuildAndNotify() {
	started := time.Now()
	err := s.rebuild()
	s.metrics.rebuildDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		s.metrics.rebuildsTotal.WithLabelValues("failure").Inc()
		slog.Error("Rebuild failed", logfields.Error(err))
		return
	}
	s.metrics.rebuildsTotal.WithLabelValues("success").Inc()
	s.hub.broadcast()
}

// countRequests tracks response codes for the metrics endpoint.
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.metrics.requestsTotal.WithLabelValues(strconv.Itoa(rec.code)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps the SSE stream working through the metrics wrapper.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
