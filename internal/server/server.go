// Package server provides the HTTP API for parsing, tailoring and exporting resumes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Cordxll/Resume-Builder/internal/config"
	"github.com/Cordxll/Resume-Builder/internal/parsing"
	"github.com/Cordxll/Resume-Builder/internal/pipeline"
	"github.com/Cordxll/Resume-Builder/internal/rewriting"
	"github.com/Cordxll/Resume-Builder/internal/segmentation"
	"github.com/Cordxll/Resume-Builder/internal/server/middleware"
	"github.com/Cordxll/Resume-Builder/internal/server/ratelimit"
	"github.com/Cordxll/Resume-Builder/internal/session"
	"github.com/Cordxll/Resume-Builder/internal/tailoring"
)

const janitorInterval = 5 * time.Minute

// Options holds the server's collaborators. Only Config is required.
type Options struct {
	Config *config.Config
	Logger *zap.Logger
	// Rewriter suggests section rewrites; nil keeps every section original
	Rewriter rewriting.Rewriter
	// Sessions defaults to an in-memory manager with the configured TTL
	Sessions *session.Manager
	// RateLimit defaults to ratelimit.LoadConfig()
	RateLimit *ratelimit.Config
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	handler        http.Handler
	logger         *zap.Logger
	sessions       *session.Manager
	tokens         *TokenService
	rewriter       rewriting.Rewriter
	rateLimiter    *ratelimit.Limiter
	validator      *requestValidator
	segmenter      *segmentation.Segmenter
	extractor      *parsing.Extractor
	rewriteTimeout time.Duration
	maxUploadBytes int64
	corsOrigins    map[string]bool
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("server config is required")
	}
	if err := cfg.ValidateServer(); err != nil {
		return nil, err
	}

	tokens, err := NewTokenService(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = session.NewManager(session.WithTTL(cfg.SessionTTL), session.WithLogger(logger))
	}
	rateConfig := opts.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		logger:         logger,
		sessions:       sessions,
		tokens:         tokens,
		rewriter:       opts.Rewriter,
		rateLimiter:    ratelimit.NewLimiter(rateConfig),
		validator:      newRequestValidator(),
		segmenter:      segmentation.New(segmentation.DefaultAliases),
		extractor:      parsing.NewExtractor(nil),
		rewriteTimeout: cfg.RewriteTimeout,
		maxUploadBytes: cfg.MaxUploadBytes,
		corsOrigins:    make(map[string]bool, len(cfg.CORSAllowOrigins)),
	}
	for _, origin := range cfg.CORSAllowOrigins {
		s.corsOrigins[origin] = true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/parse-resume", s.handleParseResume)
	mux.HandleFunc("POST /api/analyze-job", s.handleAnalyzeJob)
	mux.HandleFunc("POST /api/tailor-resume", s.handleTailorResume)
	mux.HandleFunc("POST /api/export-docx", s.handleExportDocument)

	// Session endpoints require the token issued with the session
	auth := middleware.RequireSession(tokens.AsTokenValidator())
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, auth(h))
	}
	protected("GET /api/sessions/{id}", s.handleGetSession)
	protected("DELETE /api/sessions/{id}", s.handleDeleteSession)
	protected("POST /api/sessions/{id}/retailor", s.handleRetailor)
	protected("POST /api/sessions/{id}/sections/{kind}/toggle", s.handleToggleSection)
	protected("PUT /api/sessions/{id}/sections/{kind}/accepted", s.handleSetAccepted)
	protected("PUT /api/sessions/{id}/sections/{kind}/override", s.handleSetOverride)
	protected("DELETE /api/sessions/{id}/sections/{kind}/override", s.handleClearOverride)
	protected("GET /api/sessions/{id}/resolved", s.handleResolved)
	protected("POST /api/sessions/{id}/export", s.handleExportSession)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.RewriteTimeout*4 + 30*time.Second, // tailoring makes several model calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the root handler with all middleware applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go s.sessions.RunJanitor(janitorCtx, janitorInterval)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.rateLimiter.Stop()
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
	s.rateLimiter.Stop()
	s.logger.Info("server stopped")
	return nil
}

// pipelineOptions wires the request-independent pipeline collaborators
func (s *Server) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Segmenter: s.segmenter,
		Extractor: s.extractor,
		Orchestrator: tailoring.New(s.rewriter,
			tailoring.WithTimeout(s.rewriteTimeout),
			tailoring.WithLogger(s.logger)),
		Logger: s.logger,
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response with the status for err
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		message = "internal server error"
	}
	s.jsonResponse(w, status, map[string]string{"error": message})
}
