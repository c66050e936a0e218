// Package server provides the HTTP REST API for the folio builder: accounts,
// stored documents and live editing sessions.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jonathan/folio-builder/internal/config"
	"github.com/jonathan/folio-builder/internal/export"
	"github.com/jonathan/folio-builder/internal/persistence"
	"github.com/jonathan/folio-builder/internal/rendering"
	"github.com/jonathan/folio-builder/internal/schemas"
	"github.com/jonathan/folio-builder/internal/server/middleware"
	"github.com/jonathan/folio-builder/internal/server/ratelimit"
)

// maxBodyBytes bounds JSON request bodies. Imports have their own limit.
const maxBodyBytes = 1 << 20

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	docs        *persistence.Adapter
	sessions    *Registry
	renderer    *rendering.Renderer
	printer     export.HTMLPrinter
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	authHandler *AuthHandler

	// done is closed when shutdown starts so event streams let go.
	done     chan struct{}
	stopOnce sync.Once
}

// Config holds server configuration
type Config struct {
	Addr  string
	Store DBClient
	// Printer turns preview HTML into PDF. Without one the PDF endpoint
	// answers 503.
	Printer        export.HTMLPrinter
	JWTConfig      *config.JWTConfig
	PasswordConfig *config.PasswordConfig
	// RateLimit defaults to ratelimit.LoadConfig().
	RateLimit     *ratelimit.Config
	AutosaveDelay time.Duration
	HistoryDepth  int
	IdleTimeout   time.Duration
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("server needs a store")
	}

	passwordConfig := cfg.PasswordConfig
	if passwordConfig == nil {
		var err error
		if passwordConfig, err = config.NewPasswordConfig(); err != nil {
			return nil, fmt.Errorf("failed to create password config: %w", err)
		}
	}
	jwtConfig := cfg.JWTConfig
	if jwtConfig == nil {
		var err error
		if jwtConfig, err = config.NewJWTConfig(); err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
	}
	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}

	renderer, err := rendering.NewRenderer()
	if err != nil {
		return nil, err
	}

	docs := persistence.NewAdapter(cfg.Store)
	s := &Server{
		docs:        docs,
		renderer:    renderer,
		printer:     cfg.Printer,
		rateLimiter: ratelimit.NewLimiter(rateConfig),
		jwtService:  NewJWTService(jwtConfig),
		done:        make(chan struct{}),
		sessions: NewRegistry(docs, RegistryConfig{
			AutosaveDelay: cfg.AutosaveDelay,
			HistoryDepth:  cfg.HistoryDepth,
			IdleTimeout:   cfg.IdleTimeout,
		}),
	}
	s.authHandler = NewAuthHandler(NewUserService(cfg.Store, passwordConfig), s.jwtService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /v1/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", s.authHandler.Login)

	protected := http.NewServeMux()
	protected.HandleFunc("GET /v1/me", s.authHandler.Me)
	protected.HandleFunc("PUT /v1/me/password", s.authHandler.UpdatePassword)

	protected.HandleFunc("GET /v1/documents", s.handleListDocuments)
	protected.HandleFunc("POST /v1/documents", s.handleCreateDocument)
	protected.HandleFunc("DELETE /v1/documents/{id}", s.handleDeleteDocument)

	protected.HandleFunc("POST /v1/sessions", s.handleOpenSession)
	protected.HandleFunc("GET /v1/sessions/{id}", s.handleGetSession)
	protected.HandleFunc("DELETE /v1/sessions/{id}", s.handleCloseSession)
	protected.HandleFunc("POST /v1/sessions/{id}/ops", s.handleApplyOps)
	protected.HandleFunc("POST /v1/sessions/{id}/undo", s.handleUndo)
	protected.HandleFunc("POST /v1/sessions/{id}/redo", s.handleRedo)
	protected.HandleFunc("POST /v1/sessions/{id}/save", s.handleSave)
	protected.HandleFunc("POST /v1/sessions/{id}/import", s.handleImport)
	protected.HandleFunc("PATCH /v1/sessions/{id}/settings", s.handleUpdateSettings)
	protected.HandleFunc("GET /v1/sessions/{id}/events", s.handleSessionEvents)
	protected.HandleFunc("GET /v1/sessions/{id}/preview", s.handlePreview)
	protected.HandleFunc("GET /v1/sessions/{id}/export.pdf", s.handleExportPDF)
	protected.HandleFunc("GET /v1/sessions/{id}/document.json", s.handleExportJSON)

	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(protected)
	for _, prefix := range []string{"/v1/me", "/v1/me/", "/v1/documents", "/v1/documents/", "/v1/sessions", "/v1/sessions/"} {
		mux.Handle(prefix, auth)
	}

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export drives a browser
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions returns the open session registry.
func (s *Server) Sessions() *Registry {
	return s.sessions
}

// Start serves until SIGINT or SIGTERM, then saves open sessions and shuts down.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go s.sessions.RunSweeper(ctx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")
	return s.Shutdown(context.Background())
}

// Shutdown stops accepting requests and saves every open session.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	s.stopOnce.Do(func() { close(s.done) })
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if err := s.sessions.CloseAll(ctx); err != nil {
		log.Printf("[session] Some sessions could not be saved: %v", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d in %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Unwrap lets http.ResponseController reach the connection for streaming.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.sessions.Len()})
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

type errorBody struct {
	Error  string               `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// writeError maps err onto a status with HTTPStatus. Server-side failures are
// logged and answered without their details.
func writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	body := errorBody{Error: err.Error()}
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		body.Fields = schemaErr.Fields()
	}
	if status >= http.StatusInternalServerError {
		log.Printf("[error] %v", err)
		body.Error = http.StatusText(status)
	}
	jsonResponse(w, status, body)
}

// decodeJSON reads a bounded JSON body into v, rejecting unknown fields. It
// writes the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// extractClientID extracts the client identifier from the request.
// X-Forwarded-For is ignored since it is client-controlled.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	jsonResponse(w, http.StatusTooManyRequests, response)
}
