// Package api provides the RESTful HTTP API for the SRS wizard.
//
// SYSTEM ARCHITECTURE ROLE:
// This module is the HTTP interface layer. Each client works through its own wizard session;
// handlers translate requests into editor, navigator and service calls and wrap the results in
// the standard APIResponse envelope.
//
// INTEGRATION POINTS:
// - internal/session/session.go: every mutation runs inside Store.Update under the session lock
// - internal/validation/middleware.go: RequestValidator checks parameters before any state change
// - internal/errors/handlers.go: HTTPErrorHandler maps AppError codes to status codes
// - internal/service/service.go: PDF rendering for session and sample documents
// - internal/api/openapi.go: OpenAPI spec at /api/openapi.json, docs page at /api/docs
//
// MIDDLEWARE STACK:
// - Logging: request method, path, remote address and duration
// - CORS: open cross-origin access for browser front ends
// - Content-Type: JSON by default; document endpoints override it
// - Error Handling: panic recovery into a standard 500 response
//
// ENDPOINT STRUCTURE:
// - /api/v1/health, /api/v1/steps: service status and the step catalogue
// - /api/v1/sessions: create a wizard session
// - /api/v1/sessions/{id}[/fields|/items|/validation|/next|/previous|/jump|/document]
// - /api/v1/examples[/{number}/document]: sample catalogue and sample PDFs
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/service"
	"github.com/dpshade/srs-wizard/internal/session"
	"github.com/dpshade/srs-wizard/internal/validation"
)

// APIServer serves the wizard over HTTP
type APIServer struct {
	service      *service.Service
	sessions     *session.Store
	validator    *validation.RequestValidator
	errorHandler *errors.HTTPErrorHandler
	port         int
	version      string
	server       *http.Server
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewAPIServer creates a new API server instance
func NewAPIServer(svc *service.Service, port int) *APIServer {
	ctx, cancel := context.WithCancel(context.Background())

	return &APIServer{
		service:      svc,
		sessions:     session.NewStore(),
		validator:    validation.NewRequestValidator(),
		errorHandler: errors.NewHTTPErrorHandler(true),
		port:         port,
		version:      "dev",
		ctx:          ctx,
		cancel:       cancel,
	}
}

// SetVersion sets the version reported by the health endpoint
func (s *APIServer) SetVersion(version string) {
	s.version = version
}

// Handler builds the routed handler with middleware applied
func (s *APIServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/health", s.withMiddleware(s.handleHealth))
	mux.HandleFunc("/api/v1/steps", s.withMiddleware(s.handleSteps))
	mux.HandleFunc("/api/v1/sessions", s.withMiddleware(s.handleSessions))
	mux.HandleFunc("/api/v1/sessions/", s.withMiddleware(s.handleSessionWithID))
	mux.HandleFunc("/api/v1/examples", s.withMiddleware(s.handleExamples))
	mux.HandleFunc("/api/v1/examples/", s.withMiddleware(s.handleExampleDocument))

	mux.HandleFunc("/api/docs", s.withMiddleware(s.handleOpenAPI))
	mux.HandleFunc("/api/openapi.json", s.withMiddleware(s.handleOpenAPISpec))

	return mux
}

// Start begins serving HTTP requests and prunes idle sessions in the background
func (s *APIServer) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.pruneSessions(s.service.Config().Server.SessionTTL)

	log.Printf("API server starting on http://localhost:%d", s.port)
	log.Printf("OpenAPI documentation: http://localhost:%d/api/docs", s.port)
	log.Printf("API specification: http://localhost:%d/api/openapi.json", s.port)

	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *APIServer) Stop(ctx context.Context) error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *APIServer) pruneSessions(ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Prune(ttl); n > 0 {
				log.Printf("[HTTP] pruned %d idle sessions", n)
			}
		}
	}
}

// withMiddleware applies middleware to HTTP handlers
func (s *APIServer) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.loggingMiddleware(
		s.corsMiddleware(
			s.contentTypeMiddleware(
				s.errorMiddleware(handler),
			),
		),
	)
}

// loggingMiddleware logs HTTP requests
func (s *APIServer) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		log.Printf("[%s] %s %s - %v", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	}
}

// corsMiddleware handles CORS headers
func (s *APIServer) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// contentTypeMiddleware sets default content type
func (s *APIServer) contentTypeMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next(w, r)
	}
}

// errorMiddleware handles panics
func (s *APIServer) errorMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic in handler: %v", err)
				s.errorHandler.WriteHTTPError(w, errors.InternalError("Internal server error"))
			}
		}()
		next(w, r)
	}
}

// APIResponse represents a standardized API response
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// writeResponse writes a standardized JSON response
func (s *APIServer) writeResponse(w http.ResponseWriter, data interface{}, message string, statusCode int) {
	response := APIResponse{
		Success:   statusCode < 400,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	}

	w.WriteHeader(statusCode)

	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		json.NewEncoder(w).Encode(response)
		return
	}

	w.Write(jsonData)
}

// writeError writes an error response using the error handler
func (s *APIServer) writeError(w http.ResponseWriter, err error) {
	s.errorHandler.WriteHTTPError(w, err)
}

// writeDocument sends PDF bytes as an attachment
func (s *APIServer) writeDocument(w http.ResponseWriter, data []byte, fileName string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleHealth handles GET /api/v1/health
func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, errors.MethodNotAllowedError(r.Method))
		return
	}

	s.writeResponse(w, map[string]interface{}{
		"status":    "healthy",
		"service":   "srs-wizard",
		"version":   s.version,
		"sessions":  s.sessions.Len(),
		"rendering": s.service.IsRendering(),
	}, "", http.StatusOK)
}
