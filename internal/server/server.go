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

	"github.com/mmaryam28/Propel-ATS-sub003/internal/config"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/feedback"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/gaps"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/library"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/practice"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/relevance"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/server/middleware"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	db         *db.DB
	generator  *feedback.Generator

	library  *library.Service
	coach    *practice.Coach
	ranker   *relevance.Ranker
	analyzer *gaps.Analyzer

	jwtService     *JWTService
	passwordConfig *config.PasswordConfig
	validate       *validator.Validate
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	feedbackCfg := &feedback.Config{
		Provider: feedback.Provider(cfg.FeedbackProvider),
		Endpoint: cfg.FeedbackEndpoint,
		Model:    cfg.FeedbackModel,
		APIKey:   cfg.FeedbackAPIKey,
		Timeout:  cfg.FeedbackTimeoutDuration(),
	}
	client, err := feedback.NewClient(context.Background(), feedbackCfg)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create feedback client: %w", err)
	}
	generator := feedback.NewGenerator(client, feedbackCfg)

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := &Server{
		db:             database,
		generator:      generator,
		library:        library.NewService(database, generator),
		coach:          practice.NewCoach(database, generator),
		ranker:         relevance.NewRanker(cfg.SkillVocabulary),
		analyzer:       gaps.NewAnalyzer(cfg.GapCategories),
		jwtService:     NewJWTService(jwtConfig),
		passwordConfig: passwordConfig,
		validate:       validator.New(),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second, // feedback calls are bounded below this
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes assembles the public and authenticated route sets
func (s *Server) routes() http.Handler {
	authed := http.NewServeMux()

	authed.HandleFunc("GET /auth/me", s.handleMe)

	authed.HandleFunc("GET /responses", s.handleListResponses)
	authed.HandleFunc("GET /responses/gaps", s.handleGaps)
	authed.HandleFunc("GET /responses/export", s.handleExport)
	authed.HandleFunc("GET /responses/suggest", s.handleSuggest)
	authed.HandleFunc("GET /responses/search/tags", s.handleSearchByTags)
	authed.HandleFunc("GET /responses/{id}", s.handleGetResponse)
	authed.HandleFunc("POST /responses", s.handleCreateResponse)
	authed.HandleFunc("PUT /responses/{id}", s.handleUpdateResponse)
	authed.HandleFunc("DELETE /responses/{id}", s.handleDeleteResponse)

	authed.HandleFunc("GET /responses/{id}/versions", s.handleVersionHistory)
	authed.HandleFunc("POST /responses/{id}/versions/{version_id}/restore", s.handleRestoreVersion)

	authed.HandleFunc("POST /responses/{id}/tags", s.handleAddTags)
	authed.HandleFunc("DELETE /responses/{id}/tags", s.handleRemoveTags)

	authed.HandleFunc("POST /responses/{id}/outcomes", s.handleRecordOutcome)
	authed.HandleFunc("GET /responses/{id}/metrics", s.handleMetrics)

	authed.HandleFunc("GET /responses/{id}/practice", s.handleListPractice)
	authed.HandleFunc("POST /responses/{id}/practice", s.handleCreatePractice)

	authed.HandleFunc("POST /jobs", s.handleCreateJob)
	authed.HandleFunc("GET /jobs", s.handleListJobs)
	authed.HandleFunc("GET /jobs/{id}", s.handleGetJob)

	protected := middleware.Auth(s.jwtService.AsTokenValidator())(authed)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("/", protected)

	return mux
}

// Start begins listening for requests and blocks until shutdown
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

	if err := s.generator.Close(); err != nil {
		log.Printf("Error closing feedback client: %v", err)
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

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError writes an error response with the status mapped from the
// error's type.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[server] internal error: %v", err)
	}
	s.errorResponse(w, status, err.Error())
}
