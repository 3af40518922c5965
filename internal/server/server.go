// Package server previews a scaffolded project over HTTP: it serves the
// generated index page and static assets, and reports database health.
// The database is opened and closed per request, matching how the
// generated Flask app uses its connection.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/unqdlphn/web-app-starter/internal/logger"
	"github.com/unqdlphn/web-app-starter/internal/project"
	"github.com/unqdlphn/web-app-starter/internal/store"
	"github.com/unqdlphn/web-app-starter/internal/store/sqlite"
)

// Config holds the preview server settings.
type Config struct {
	Addr            string
	Dir             string // project workspace directory
	DBPath          string // database file, defaults to the workspace database
	ShutdownTimeout time.Duration
	Version         string
}

// Server previews a project workspace.
type Server struct {
	cfg Config
	log logger.Logger

	// OpenStore returns the store for the workspace database.
	// Overridable in tests.
	OpenStore func(dbPath string) store.Store
}

// New creates a preview server for the workspace in cfg.Dir.
func New(cfg Config, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default
	}
	if cfg.DBPath == "" {
		cfg.DBPath = project.DBPath(cfg.Dir)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 15 * time.Second
	}
	s := &Server{cfg: cfg, log: log}
	s.OpenStore = func(dbPath string) store.Store {
		return sqlite.New(dbPath, log)
	}
	return s
}

// Handler returns the route table for the preview server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/live", s.handleLive)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/status", jsonOnly(http.HandlerFunc(s.handleStatus)))

	// Static under /static/* (maps to the workspace static dir)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(project.StaticPath(s.cfg.Dir)))))

	return mux
}

// ListenAndServe runs the preview server until the context ends. On
// cancellation it performs a bounded shutdown so in-flight requests are
// drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	s.log.Info("previewing %s on %s", s.cfg.Dir, s.cfg.Addr)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		s.log.Info("shutdown complete")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.touchStore()
	http.ServeFile(w, r, project.IndexTemplatePath(s.cfg.Dir))
}

// touchStore opens and closes a database handle the way the generated
// app's connection helper does. The index page is static, so the row
// count only goes to the debug log. A missing file is left missing.
func (s *Server) touchStore() {
	exists, err := store.CheckExists(s.cfg.DBPath)
	if err != nil || !exists {
		return
	}
	st := s.OpenStore(s.cfg.DBPath)
	if err := st.Open(); err != nil {
		s.log.Debug("open %s: %v", s.cfg.DBPath, err)
		return
	}
	defer st.Close()
	if count, err := st.Count(store.PlaceholderTable); err == nil {
		s.log.Debug("%s has %d rows", store.PlaceholderTable, count)
	}
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	state, err := s.storeState()
	if err != nil {
		http.Error(w, fmt.Sprintf("NOT READY: %v", err), http.StatusServiceUnavailable)
		return
	}
	if state != store.StateReady {
		http.Error(w, fmt.Sprintf("NOT READY: database %s", state), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"version": s.cfg.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}

	if m, err := project.ReadManifest(s.cfg.Dir); err == nil {
		resp["project"] = m.Name
	}

	state, err := s.storeState()
	if err != nil {
		resp["db"] = fmt.Sprintf("error: %v", err)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}
	resp["db"] = state.String()

	if size, err := store.FileSize(s.cfg.DBPath); err == nil && size > 0 {
		resp["size"] = humanize.Bytes(uint64(size))
	}

	if state == store.StateReady {
		st := s.OpenStore(s.cfg.DBPath)
		if err := st.Open(); err == nil {
			defer st.Close()
			if count, err := st.Count(store.PlaceholderTable); err == nil {
				resp["rows"] = humanize.Comma(count)
			}
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// storeState opens the workspace database, checks it, and closes it
// again. A missing file reports StateMissing without creating the file.
func (s *Server) storeState() (store.State, error) {
	exists, err := store.CheckExists(s.cfg.DBPath)
	if err != nil {
		return store.StateMissing, err
	}
	if !exists {
		return store.StateMissing, nil
	}

	st := s.OpenStore(s.cfg.DBPath)
	if err := st.Open(); err != nil {
		return store.StateMissing, err
	}
	defer st.Close()

	return st.CheckState()
}

// jsonOnly enforces the JSON contract for machine endpoints.
func jsonOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept := r.Header.Get("Accept")
		if accept != "" && !strings.Contains(accept, "application/json") && !strings.Contains(accept, "*/*") {
			writeJSONError(w, http.StatusNotAcceptable, "not_acceptable", "Accept must include application/json")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func writeJSONError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": msg,
	})
}
