// Package http exposes the query API: OpenAI-compatible chat completions,
// the legacy simple-search endpoints and signed blob downloads.
package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ragfront/ragfront-core/internal/adapters/driven/blob"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
	"github.com/ragfront/ragfront-core/internal/core/ports/driving"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	queryService   driving.QueryService
	projectService driving.ProjectService

	// Infrastructure
	projects driven.ProjectStore
	blobs    *blob.Signer
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	queryService driving.QueryService,
	projectService driving.ProjectService,
	projects driven.ProjectStore,
	blobs *blob.Signer,
) *Server {
	s := &Server{
		router:         http.NewServeMux(),
		version:        cfg.Version,
		queryService:   queryService,
		projectService: projectService,
		projects:       projects,
		blobs:          blobs,
	}

	s.setupRoutes()

	chain := NewRecoveryMiddleware().Handler(
		NewCORSMiddleware(cfg.AllowedOrigins).Handler(
			NewLoggingMiddleware().Handler(s.router)))

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:     chain,
		ReadTimeout: 30 * time.Second,
		// No write timeout: streamed completions hold the connection open
		// for the full generation.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// OpenAI-compatible surface
	s.router.HandleFunc("POST /v1/chat/completions", s.handleChatCompletions)
	s.router.HandleFunc("GET /v1/models", s.handleModels)

	// Legacy simple-search endpoints
	s.router.HandleFunc("POST /api/local_search", s.handleSearch(modeLocal))
	s.router.HandleFunc("POST /api/global_search", s.handleSearch(modeGlobal))
	s.router.HandleFunc("POST /api/drift_search", s.handleSearch(modeDrift))

	// Project administration
	s.router.HandleFunc("GET /api/projects", s.handleListProjects)
	s.router.HandleFunc("POST /api/projects", s.handleCreateProject)
	s.router.HandleFunc("DELETE /api/projects/{name}", s.handleDeleteProject)
	s.router.HandleFunc("GET /api/projects/{name}/status", s.handleProjectStatus)

	// Signed blob downloads
	s.router.HandleFunc("GET /download/{container}/{blob}", s.handleDownload)
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
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

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
