// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

// Package server is the local dev server: it serves the generated site from
// the output directory, reports health, and (with the watcher) rebuilds on
// content changes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/zuhairmbj123/zws/internal/config"
	"github.com/zuhairmbj123/zws/internal/logging"
)

// shutdownTimeout bounds the drain on graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server serves the generated site.
type Server struct {
	cfg    config.ServerConfig
	outDir string

	mu        sync.RWMutex
	lastBuild time.Time
}

// New constructs a dev server for the given output directory.
func New(cfg config.ServerConfig, outDir string) *Server {
	return &Server{cfg: cfg, outDir: outDir}
}

// MarkBuilt records the time of the latest successful build for /healthz.
func (s *Server) MarkBuilt(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastBuild = t
}

// health is the /healthz response body.
type health struct {
	Status    string `json:"status"`
	LastBuild string `json:"last_build,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	last := s.lastBuild
	s.mu.RUnlock()

	h := health{Status: "ok"}
	if !last.IsZero() {
		h.LastBuild = last.UTC().Format(time.RFC3339)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h)
}

// Handler returns the dev server's HTTP handler: the health endpoint plus
// static file serving over the output directory.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/", http.FileServer(http.Dir(s.outDir)))
	return mux
}

// ListenAndServe binds the first free port in the configured range and
// serves until ctx is canceled, then drains gracefully. The bound port is
// reported through onListen before serving starts.
func (s *Server) ListenAndServe(ctx context.Context, onListen func(port int)) error {
	ln, port, err := Listen(s.cfg.Host, s.cfg.PortMin, s.cfg.PortMax)
	if err != nil {
		return err
	}

	if onListen != nil {
		onListen(port)
	}

	httpSrv := &http.Server{Handler: s.Handler()}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpSrv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logging.Warnf("dev server shutdown: %v", err)
			_ = httpSrv.Close()
		}
		<-serveErr
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
			return nil
		}
		return err
	}
}
