// Package server provides the HTTP REST API for skill matching and candidate ranking.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-ranker/internal/config"
	"github.com/jonathan/candidate-ranker/internal/db"
	"github.com/jonathan/candidate-ranker/internal/logger"
	"github.com/jonathan/candidate-ranker/internal/observability"
	"github.com/jonathan/candidate-ranker/internal/ranking"
	"github.com/jonathan/candidate-ranker/internal/repository"
	"github.com/jonathan/candidate-ranker/internal/selection"
	"github.com/jonathan/candidate-ranker/internal/server/middleware"
	"github.com/jonathan/candidate-ranker/internal/server/ratelimit"
)

// maxBodyBytes caps request bodies; a ranking request carries a whole pool.
const maxBodyBytes = 8 << 20

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	repo        repository.Repository
	db          *db.DB
	settings    config.Config
	rankingOpts ranking.Options
	selections  *selection.Store
	registry    *prometheus.Registry
	metrics     *observability.Metrics
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
}

// Config holds server configuration
type Config struct {
	Port int
	// DatabaseURL selects the PostgreSQL repository; ranking runs are then persisted.
	DatabaseURL string
	// Dataset selects an in-memory repository loaded from a JSON file.
	Dataset string
	// Settings are the ranking defaults; requests may override them.
	Settings  config.Config
	Logger    *zap.Logger
	RateLimit *ratelimit.Config
	// JWT enables bearer authentication on every route except /health and /metrics.
	JWT *config.JWTConfig
}

// New creates a new server instance backed by the database, the dataset, or
// an empty in-memory store, in that order of preference.
func New(cfg Config) (*Server, error) {
	var (
		repo     repository.Repository
		database *db.DB
	)

	switch {
	case cfg.DatabaseURL != "":
		conn, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		repo, database = conn, conn
	case cfg.Dataset != "":
		store, err := repository.LoadDataset(cfg.Dataset)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset: %w", err)
		}
		repo = store
	default:
		repo = repository.NewMemoryStore()
	}

	s, err := newServer(cfg, repo)
	if err != nil {
		if database != nil {
			database.Close()
		}
		return nil, err
	}
	s.db = database
	return s, nil
}

func newServer(cfg Config, repo repository.Repository) (*Server, error) {
	settings := cfg.Settings.MergeWithDefaults(config.Default())
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ranking settings: %w", err)
	}
	opts, err := settings.RankingOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid ranking settings: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		repo:        repo,
		settings:    settings,
		rankingOpts: opts,
		selections:  selection.NewStore(),
		registry:    registry,
		metrics:     metrics,
		logger:      log.Named("server"),
		rateLimiter: ratelimit.NewLimiter(rateConfig),
	}
	if cfg.JWT != nil {
		s.jwtService = NewJWTService(cfg.JWT)
	}

	port := cfg.Port
	if port == 0 {
		port = settings.Port
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the full middleware chain around the API routes.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()

	// Stateless scoring
	api.HandleFunc("POST /skill-matches", s.handleSkillMatches)
	api.HandleFunc("POST /overall-score", s.handleOverallScore)
	api.HandleFunc("POST /rankings", s.handleRankings)

	// Stored requisitions
	api.HandleFunc("GET /requisitions", s.handleListRequisitions)
	api.HandleFunc("GET /requisitions/{id}/ranking", s.handleRequisitionRanking)
	api.HandleFunc("GET /requisitions/{id}/runs", s.handleListRankingRuns)
	api.HandleFunc("GET /runs/{id}", s.handleGetRankingRun)

	// Selection
	api.HandleFunc("GET /requisitions/{id}/selection", s.handleGetSelection)
	api.HandleFunc("PUT /requisitions/{id}/selection", s.handleSetSelection)
	api.HandleFunc("DELETE /requisitions/{id}/selection", s.handleClearSelection)
	api.HandleFunc("POST /requisitions/{id}/selection/toggle", s.handleToggleSelection)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.Handle("/", s.withAuth(api))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close stops the rate limiter and releases the database connection.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
}

// withAuth requires a bearer token when JWT is configured
func (s *Server) withAuth(next http.Handler) http.Handler {
	if s.jwtService == nil {
		return next
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(next)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
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
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder remembers the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("elapsed", time.Since(start)),
		}
		if rec.status >= http.StatusInternalServerError {
			s.logger.Error("request failed", fields...)
			return
		}
		s.logger.Info("request", fields...)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failed writes err with the status HTTPStatus picks for it
func (s *Server) failed(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("internal error", zap.Error(err))
		s.errorResponse(w, status, "internal error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// decodeRequest reads a JSON body into v and checks its validate tags
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}

	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			// drop the request type name from the namespace
			_, field, _ := strings.Cut(fe.Namespace(), ".")
			return &ErrValidation{Field: field, Message: fmt.Sprintf("failed %q check", fe.Tag())}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr.
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
		seconds := max(int(info.RetryAfter.Seconds()), 1)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Int("remaining", info.Remaining),
		zap.Time("reset", info.ResetTime))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
