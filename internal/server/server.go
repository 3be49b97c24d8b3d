// Package server provides the HTTP REST API for the resume rule engine.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/jonathan/placement-prep/internal/config"
	"github.com/jonathan/placement-prep/internal/db"
	"github.com/jonathan/placement-prep/internal/ingestion"
	"github.com/jonathan/placement-prep/internal/rules"
	"github.com/jonathan/placement-prep/internal/server/ratelimit"
	"github.com/jonathan/placement-prep/internal/types"
)

// maxBodyBytes caps request bodies; resumes are small documents.
const maxBodyBytes = 1 << 20

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       db.ResumeStore
	loader      *rules.Loader
	ingester    *ingestion.Ingester
	rateLimiter *ratelimit.Limiter
	logger      *slog.Logger
	origins     []string
	level       types.Level
	strategy    string
}

// Config holds server configuration. Zero values fall back to defaults.
type Config struct {
	Addr           string
	Store          db.ResumeStore
	Loader         *rules.Loader
	Ingester       *ingestion.Ingester
	RateLimit      *ratelimit.Config
	AllowedOrigins []string
	Level          types.Level
	Strategy       string
	Logger         *slog.Logger
}

// New creates a new server instance
func New(cfg Config) *Server {
	s := &Server{
		store:    cfg.Store,
		loader:   cfg.Loader,
		ingester: cfg.Ingester,
		logger:   cfg.Logger,
		origins:  cfg.AllowedOrigins,
		level:    cfg.Level,
		strategy: cfg.Strategy,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.store == nil {
		s.store = db.NewMemoryStore()
	}
	if s.loader == nil {
		s.loader = rules.Default()
	}
	if s.ingester == nil {
		s.ingester = ingestion.NewIngester(s.logger, nil)
	}
	if len(s.origins) == 0 {
		s.origins = []string{"*"}
	}
	if s.level == "" {
		s.level = types.LevelMid
	}
	if s.strategy == "" {
		s.strategy = config.StrategyVerdict
	}

	// Initialize rate limiter
	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rlConfig)

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Rule catalogue
	mux.HandleFunc("GET /domains", s.handleListDomains)
	mux.HandleFunc("GET /domains/{domain}/rules", s.handleGetRules)
	mux.HandleFunc("GET /domains/{domain}/required-skills", s.handleGetRequiredSkills)
	mux.HandleFunc("GET /domains/{domain}/power-words", s.handleGetPowerWords)
	mux.HandleFunc("GET /domains/{domain}/red-flags", s.handleGetRedFlags)
	mux.HandleFunc("GET /domains/{domain}/structure", s.handleGetStructure)

	// Scoring and suggestions
	mux.HandleFunc("POST /domains/{domain}/score", s.handleScore)
	mux.HandleFunc("POST /domains/{domain}/evaluations", s.handleEvaluate)
	mux.HandleFunc("POST /domains/{domain}/suggestions/field", s.handleFieldSuggestions)
	mux.HandleFunc("POST /domains/{domain}/suggestions/global", s.handleGlobalSuggestions)
	mux.HandleFunc("POST /domains/{domain}/job-context", s.handleJobContext)

	// Resume CRUD
	mux.HandleFunc("POST /resumes", s.handleCreateResume)
	mux.HandleFunc("GET /resumes", s.handleListResumes)
	mux.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	mux.HandleFunc("PUT /resumes/{id}", s.handleUpdateResume)
	mux.HandleFunc("DELETE /resumes/{id}", s.handleDeleteResume)
	mux.HandleFunc("GET /resumes/{id}/score", s.handleScoreStoredResume)

	s.handler = s.withLogging(s.withCORS(s.withRateLimit(mux)))
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second, // Job-context requests fetch remote pages
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until ctx is cancelled or
// the process receives SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.Close()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close releases the rate limiter and the resume store
func (s *Server) Close() {
	s.rateLimiter.Stop()
	if err := s.store.Close(); err != nil {
		s.logger.Warn("failed to close resume store", "error", err)
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.allowedOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allowedOrigin returns the Access-Control-Allow-Origin value for origin, or "" to omit it
func (s *Server) allowedOrigin(origin string) string {
	if slices.Contains(s.origins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(s.origins, origin) {
		return origin
	}
	return ""
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
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
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status code and writes it
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON decodes a size-limited request body into v
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	return nil
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
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
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := max(1, int(info.RetryAfter.Seconds()))
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn("rate limit exceeded",
		"client", s.extractClientID(r),
		"path", r.URL.Path,
		"limit", info.Limit,
		"remaining", info.Remaining,
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// normalizeStrategy returns the requested strategy or the server default
func (s *Server) normalizeStrategy(strategy string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "":
		return s.strategy, nil
	case config.StrategyLegacy:
		return config.StrategyLegacy, nil
	case config.StrategyVerdict:
		return config.StrategyVerdict, nil
	default:
		return "", &ErrValidation{Field: "strategy", Message: fmt.Sprintf("unknown strategy %q (want legacy or verdict)", strategy)}
	}
}
