package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/skillmatch/internal/advisor"
	"github.com/jonathan/skillmatch/internal/cache"
	"github.com/jonathan/skillmatch/internal/career"
	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/corpus"
	"github.com/jonathan/skillmatch/internal/gap"
	"github.com/jonathan/skillmatch/internal/logging"
	"github.com/jonathan/skillmatch/internal/observability"
	"github.com/jonathan/skillmatch/internal/ranking"
	"github.com/jonathan/skillmatch/internal/server/middleware"
	"github.com/jonathan/skillmatch/internal/server/ratelimit"
)

// Deps are the collaborators the server needs. Store is required; the rest
// may be nil.
type Deps struct {
	Store   *corpus.Store
	Cache   *cache.MatchCache
	Advisor *advisor.Advisor
	Metrics *observability.Metrics
	JWT     *JWTService
	Logger  logging.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         config.ServerConfig
	store       *corpus.Store
	cache       *cache.MatchCache
	recommender *career.Recommender
	metrics     *observability.Metrics
	jwtService  *JWTService
	logger      logging.Logger
	rateLimiter *ratelimit.Limiter
	scorer      *ranking.Scorer
	analyzer    *gap.Analyzer
	handler     http.Handler
}

// knownRoutes bounds the route label cardinality of request metrics.
var knownRoutes = map[string]bool{
	"/health":         true,
	"/metrics":        true,
	"/match":          true,
	"/match/filtered": true,
	"/match/batch":    true,
	"/gap":            true,
	"/feedback":       true,
	"/corpus/stats":   true,
	"/corpus/reload":  true,
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("server requires a corpus store")
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = observability.NewMetrics()
	}
	if deps.Advisor == nil {
		deps.Advisor = advisor.New(nil, nil, deps.Logger)
	}

	k := deps.Store.Knowledge()
	s := &Server{
		cfg:         cfg.Server,
		store:       deps.Store,
		cache:       deps.Cache,
		recommender: career.New(k, deps.Advisor),
		metrics:     deps.Metrics,
		jwtService:  deps.JWT,
		logger:      deps.Logger,
		rateLimiter: ratelimit.NewLimiter(ratelimit.FromConfig(cfg.RateLimit)),
		scorer:      ranking.NewScorer(k),
		analyzer:    gap.NewAnalyzer(k),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	mux.HandleFunc("POST /match", s.handleMatch)
	mux.HandleFunc("POST /match/filtered", s.handleMatchFiltered)
	mux.HandleFunc("POST /match/batch", s.handleMatchBatch)
	mux.HandleFunc("POST /gap", s.handleGap)
	mux.HandleFunc("POST /feedback", s.handleFeedback)

	mux.HandleFunc("GET /corpus/stats", s.handleCorpusStats)
	if s.jwtService != nil {
		mux.Handle("POST /corpus/reload", middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(http.HandlerFunc(s.handleCorpusReload)))
	} else {
		mux.HandleFunc("POST /corpus/reload", s.handleReloadDisabled)
	}

	s.handler = s.withRateLimit(s.withMetrics(middleware.RequestID(s.withLogging(s.withCORS(mux)))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", logging.Fields{"addr": s.httpServer.Addr})
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped", nil)
	return nil
}

// Close releases background resources without serving. Used by tests.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// statusRecorder captures the status code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

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
			s.rateLimitResponse(w, clientID, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withMetrics records request count and latency per known route.
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if !knownRoutes[route] {
			route = "other"
		}
		s.metrics.ObserveRequest(route, r.Method, rec.Status(), time.Since(start))
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		fields := logging.Fields{
			"request_id":  middleware.GetRequestID(r.Context()),
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client":      s.extractClientID(r),
		}
		switch {
		case rec.Status() >= 500:
			s.logger.Error("request failed", fields)
		case rec.Status() >= 400:
			s.logger.Warn("request rejected", fields)
		default:
			s.logger.Info("request completed", fields)
		}
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
		s.logger.WithError(err).Error("failed to encode JSON response", nil)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status code. Internal errors are logged and hidden.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= 500 && status != http.StatusServiceUnavailable {
		s.logger.WithError(err).Error("request error", logging.Fields{
			"request_id": middleware.GetRequestID(r.Context()),
			"path":       r.URL.Path,
		})
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; forwarded headers are not trusted.
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
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, r *http.Request, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Round(time.Second) / time.Second)
		if secs < 1 {
			secs = 1
		}
		response["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	s.logger.Warn("rate limit exceeded", logging.Fields{
		"client": clientID,
		"method": r.Method,
		"path":   r.URL.Path,
		"limit":  info.Limit,
	})

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
