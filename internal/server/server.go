// Package server provides the HTTP server for the hand posing daemon.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/cyhunter/handposing/internal/server/api"
	"github.com/cyhunter/handposing/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Events    *EventHub
}

// Server represents the HTTP server for the hand posing application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		snappableHandler := api.NewSnappableHandler(s.config.Store)
		pointsHandler := api.NewSnapPointsHandler(s.config.Store)
		bestPoseHandler := api.NewBestPoseHandler(s.config.Store)

		// Route between the snappable handler and its nested resources:
		// /api/snappables/{id}/points... and /api/snappables/{id}/best-pose
		snappableRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/best-pose") {
				bestPoseHandler.ServeHTTP(w, r)
				return
			}
			if strings.Contains(r.URL.Path, "/points") {
				pointsHandler.ServeHTTP(w, r)
				return
			}
			snappableHandler.ServeHTTP(w, r)
		})

		s.mux.Handle("/api/snappables", snappableRouter)
		s.mux.Handle("/api/snappables/", snappableRouter)
	}

	// Register the grab event stream if an event hub is configured
	if s.config.Events != nil {
		s.mux.Handle("/api/events", s.config.Events)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
