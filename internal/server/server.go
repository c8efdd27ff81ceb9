// Package server provides the HTTP server for the ASL biometric verification
// service.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/identity"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/metrics"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/server/api"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/telehealth"
)

// Config holds the server configuration.
type Config struct {
	Matcher      *identity.Matcher
	Sessions     *telehealth.Manager
	Metrics      *metrics.Metrics
	ChallengeTTL time.Duration
}

// Server represents the HTTP server for the biometrics application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration. A nil Metrics is
// replaced with a standalone registry so the handlers never have to check.
func New(config Config) *Server {
	if config.Metrics == nil {
		config.Metrics = metrics.New(nil)
	}
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
	s.mux.HandleFunc("/health", s.handleHealth)

	s.mux.Handle("/metrics", s.config.Metrics.Handler())

	telehealthHandler := api.NewTelehealthHandler(s.config.Sessions, s.config.Metrics)
	s.mux.Handle("/api/telehealth/session", telehealthHandler)
	s.mux.Handle("/api/telehealth/session/", telehealthHandler)

	profileHandler := api.NewProfileHandler(s.config.Matcher, s.config.Sessions)
	s.mux.Handle("/api/biometrics/profile/", profileHandler)

	motionHandler := api.NewMotionHandler(s.config.ChallengeTTL)
	s.mux.HandleFunc("/api/motion/analyze", motionHandler.Analyze)
	s.mux.HandleFunc("/api/motion/challenge", motionHandler.Challenge)

	s.mux.Handle("/api/admin/stats", api.NewStatsHandler(s.config.Sessions))

	s.mux.Handle("/api/capture", NewCaptureHandler())
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status":  "healthy",
		"service": "ASL Biometrics",
		"uptime":  time.Since(s.start).String(),
		"features": []string{
			"hand-motion-detection",
			"identity-matching",
			"motion-analysis",
			"telehealth-verification",
		},
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
