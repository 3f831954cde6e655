// Package server provides the HTTP REST API around the ranking engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mateo/candidate-ranker/internal/audit"
	"github.com/mateo/candidate-ranker/internal/extract"
	"github.com/mateo/candidate-ranker/internal/jobsearch"
	"github.com/mateo/candidate-ranker/internal/scoring"
)

// Config holds server configuration.
type Config struct {
	Port int

	// EmbedServiceURL is the SBERT sidecar /embed endpoint. When empty and
	// GeminiAPIKey is set, the Gemini embedder is used instead; when both
	// are empty, embedding-mode requests fall back to TF-IDF scoring.
	EmbedServiceURL string
	GeminiAPIKey    string

	// MLServiceURL is the ML relevance predict endpoint; empty means
	// "blend with base similarity only".
	MLServiceURL string

	// DictionaryPath optionally replaces the embedded entity dictionary.
	DictionaryPath string

	// External job search provider; unconfigured means mock results.
	JobsAPIBaseURL string
	JobsAPIKey     string

	// AuditCapacity bounds the in-memory audit history (0 = default).
	AuditCapacity int
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	dictionary *extract.Dictionary
	embedder   scoring.Embedder
	relevance  scoring.RelevanceScorer
	jobs       *jobsearch.Client
	auditLog   *audit.Log
	validate   *validator.Validate
}

// New creates a new server instance.
func New(cfg Config) (*Server, error) {
	dictionary := extract.Default()
	if cfg.DictionaryPath != "" {
		loaded, err := extract.Load(cfg.DictionaryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load dictionary: %w", err)
		}
		dictionary = loaded
	}

	var embedder scoring.Embedder
	switch {
	case cfg.EmbedServiceURL != "":
		embedder = scoring.NewHTTPEmbedder(cfg.EmbedServiceURL, nil)
	case cfg.GeminiAPIKey != "":
		gemini, err := scoring.NewGeminiEmbedder(context.Background(), cfg.GeminiAPIKey, "")
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini embedder: %w", err)
		}
		embedder = gemini
	}

	var relevance scoring.RelevanceScorer
	if cfg.MLServiceURL != "" {
		relevance = scoring.NewHTTPRelevanceScorer(cfg.MLServiceURL, nil)
	}

	s := &Server{
		dictionary: dictionary,
		embedder:   embedder,
		relevance:  relevance,
		jobs:       jobsearch.NewClient(cfg.JobsAPIBaseURL, cfg.JobsAPIKey, nil),
		auditLog:   audit.NewLog(cfg.AuditCapacity),
		validate:   validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/rank", s.handleRank)
	mux.HandleFunc("GET /api/audit", s.handleAudit)
	mux.HandleFunc("GET /api/jobs/search", s.handleJobSearch)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // embedding-mode runs wait on the collaborator
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
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

	if closer, ok := s.embedder.(io.Closer); ok {
		_ = closer.Close()
	}

	log.Println("Server stopped")
	return nil
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

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
