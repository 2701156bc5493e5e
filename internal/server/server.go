// Package server provides the HTTP REST API for the job-search launchpad.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/SureshMalla-bit/mallalaunchpad/internal/analytics"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/assist"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/auth"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/discover"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/server/middleware"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/server/ratelimit"
	"github.com/SureshMalla-bit/mallalaunchpad/internal/store"
)

// validate checks request DTO struct tags.
var validate = validator.New()

// Config holds server configuration.
type Config struct {
	Port int
	// AdminEmail gates the analytics dashboard. Empty disables it.
	AdminEmail string
}

// Dependencies are the services the handlers delegate to.
type Dependencies struct {
	Store     store.RecordStore
	Auth      auth.Provider
	Sessions  *auth.SessionService
	Generator *assist.Generator
	Searcher  *discover.Searcher
	Analytics *analytics.Aggregator
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	store       store.RecordStore
	auth        auth.Provider
	sessions    *auth.SessionService
	generator   *assist.Generator
	searcher    *discover.Searcher
	analytics   *analytics.Aggregator
	rateLimiter *ratelimit.Limiter
	adminEmail  string
}

// New creates a new server instance.
func New(cfg Config, deps Dependencies) (*Server, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if deps.Auth == nil || deps.Sessions == nil {
		return nil, fmt.Errorf("auth provider and session service are required")
	}
	if deps.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}

	s := &Server{
		store:       deps.Store,
		auth:        deps.Auth,
		sessions:    deps.Sessions,
		generator:   deps.Generator,
		searcher:    deps.Searcher,
		analytics:   deps.Analytics,
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultCapacity, ratelimit.DefaultRefillRate),
		adminEmail:  cfg.AdminEmail,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Everything except health and the auth endpoints
// sits behind the session middleware.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/signup", s.handleSignUp)
	mux.HandleFunc("POST /auth/signin", s.handleSignIn)

	api := http.NewServeMux()

	// Job tracker
	api.HandleFunc("GET /jobs", s.handleListJobs)
	api.HandleFunc("GET /jobs/board", s.handleJobBoard)
	api.HandleFunc("POST /jobs", s.handleCreateJob)
	api.HandleFunc("PATCH /jobs/{id}", s.handleUpdateJob)
	api.HandleFunc("DELETE /jobs/{id}", s.handleDeleteJob)

	// Generators
	api.HandleFunc("POST /assist/cover-letter", s.metered(s.handleCoverLetter))
	api.HandleFunc("POST /assist/roadmap", s.metered(s.handleRoadmap))
	api.HandleFunc("POST /assist/resume-review", s.metered(s.handleResumeReview))
	api.HandleFunc("POST /assist/ats-report", s.metered(s.handleATSReport))

	// Interview simulator
	api.HandleFunc("GET /assist/personas", s.handlePersonas)
	api.HandleFunc("POST /assist/interviews", s.metered(s.handleStartInterview))
	api.HandleFunc("POST /assist/interviews/{id}/replies", s.metered(s.handleInterviewReply))
	api.HandleFunc("GET /assist/interviews/{id}", s.handleInterviewTranscript)
	api.HandleFunc("DELETE /assist/interviews/{id}", s.handleEndInterview)

	// Local tools
	api.HandleFunc("POST /tools/extract", s.handleExtract)
	api.HandleFunc("POST /tools/keywords", s.handleKeywords)
	api.HandleFunc("POST /tools/beautify", s.handleBeautify)
	api.HandleFunc("GET /tools/prompts", s.handleListPrompts)
	api.HandleFunc("POST /tools/prompts/fill", s.handleFillPrompt)
	api.HandleFunc("POST /tools/discover", s.metered(s.handleDiscover))

	// Admin
	api.HandleFunc("GET /admin/analytics", s.handleAnalytics)

	mux.Handle("/", middleware.Session(s.sessions)(api))
	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.store.Close(); err != nil {
		log.Printf("Error closing store: %v", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// metered rate-limits a model-backed handler per authenticated user.
func (s *Server) metered(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := middleware.SessionFrom(r)
		if err != nil {
			s.errorResponse(w, http.StatusUnauthorized, err.Error())
			return
		}
		if !s.rateLimiter.Allow(session.UID) {
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}
		next(w, r)
	}
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps a service error onto the matching HTTP status.
func (s *Server) fail(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

// decodeJSON decodes the request body into dst and runs struct validation.
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrBadRequest{Message: "invalid JSON body"}
	}
	if err := validate.Struct(dst); err != nil {
		if fields, ok := err.(validator.ValidationErrors); ok && len(fields) > 0 {
			return &ErrBadRequest{Message: fmt.Sprintf("field %s is invalid", fields[0].Field())}
		}
		return &ErrBadRequest{Message: "invalid request"}
	}
	return nil
}
