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

	"github.com/hiredesk/hiredesk/internal/assessment"
	"github.com/hiredesk/hiredesk/internal/config"
	"github.com/hiredesk/hiredesk/internal/db"
	"github.com/hiredesk/hiredesk/internal/hiring"
	"github.com/hiredesk/hiredesk/internal/llm"
	"github.com/hiredesk/hiredesk/internal/mailer"
	"github.com/hiredesk/hiredesk/internal/server/middleware"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	db         *db.DB
	cfg        *config.Config
	jwtService *JWTService
	jobs       hiring.JobStore
	engine     *hiring.Engine
	resolver   *hiring.Resolver
	generator  *assessment.Generator
	registry   *assessment.Registry
	recorder   *assessment.Recorder
	llmClient  llm.Client
}

// New creates a new server instance wired to Postgres, the LLM client
// and the notification mailer.
func New(cfg *config.Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	llmClient, err := llm.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	sender, err := mailer.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail sender: %w", err)
	}
	dispatcher := hiring.NewDispatcher(sender, cfg.BaseURL)

	s := &Server{
		db:         database,
		cfg:        cfg,
		jwtService: NewJWTService(jwtConfig),
		jobs:       database,
		engine:     hiring.NewEngine(database, database, dispatcher),
		resolver:   hiring.NewResolver(database),
		generator:  assessment.NewGenerator(llmClient, database, cfg.AssessmentDuration, cfg.PassingScore),
		registry:   assessment.NewRegistry(database, cfg.BaseURL, cfg.AssessmentDuration),
		recorder:   assessment.NewRecorder(database, database),
		llmClient:  llmClient,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for assessment generation
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router. Split out so handler tests can
// exercise the mux without a listening socket.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(s.jwtService)

	// Pipeline endpoints
	mux.Handle("PUT /api/applications/{id}/status", auth(http.HandlerFunc(s.handleUpdateStatus)))
	mux.Handle("GET /api/my/applications", auth(http.HandlerFunc(s.handleListMyApplications)))

	// Assessment endpoints
	mux.Handle("POST /api/jobs/{id}/assessment", auth(http.HandlerFunc(s.handleGenerateAssessment)))
	mux.Handle("GET /api/jobs/{id}/assessment", auth(http.HandlerFunc(s.handleGetAssessment)))
	mux.Handle("DELETE /api/jobs/{id}/assessment", auth(http.HandlerFunc(s.handleDeleteAssessment)))
	mux.Handle("POST /api/assessments/share", auth(http.HandlerFunc(s.handleCreateShareLink)))

	// Candidate-facing endpoints; reached via emailed links, no session
	mux.HandleFunc("GET /api/assessments/shared/{token}", s.handleResolveShareLink)
	mux.HandleFunc("POST /api/assessments/score", s.handleSubmitScore)

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
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

	if err := s.llmClient.Close(); err != nil {
		log.Printf("Error closing LLM client: %v", err)
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response with a short machine-checkable
// reason. Outside production the underlying error text is included to aid
// debugging.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	body := map[string]string{"error": errorCode(err)}
	if !s.cfg.IsProduction() {
		body["detail"] = err.Error()
	}
	s.jsonResponse(w, HTTPStatus(err), body)
}
