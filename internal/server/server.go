// Package server provides the HTTP REST API for the enhancement service.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/Jmaradona/makeitshorter-sub000/internal/config"
	"github.com/Jmaradona/makeitshorter-sub000/internal/enhance"
	"github.com/Jmaradona/makeitshorter-sub000/internal/llm"
	"github.com/Jmaradona/makeitshorter-sub000/internal/server/middleware"
	"github.com/Jmaradona/makeitshorter-sub000/internal/server/ratelimit"
	"github.com/Jmaradona/makeitshorter-sub000/internal/usage"
)

// Server represents the HTTP server and its wired dependencies.
type Server struct {
	httpServer  *http.Server
	enhancer    *enhance.Enhancer
	gate        usage.Gate
	members     *usage.MemberStore
	rdb         *redis.Client
	llmClient   llm.Client
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
}

// New creates a server instance with all backing services connected.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	members, err := usage.ConnectMembers(ctx, cfg.DatabaseURL, cfg.FreePlanMessages)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		members.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		members.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}

	gate := usage.NewService(usage.NewGuestStore(rdb, cfg.GuestDailyLimit), members)

	enhancerCfg := enhance.DefaultConfig()
	enhancerCfg.MaxInputTokens = cfg.MaxInputTokens

	s := &Server{
		enhancer:    enhance.New(llmClient, gate, enhancerCfg),
		gate:        gate,
		members:     members,
		rdb:         rdb,
		llmClient:   llmClient,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		jwtService:  NewJWTService(cfg.JWTSecret),
	}

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     s.routes(),
		ReadTimeout: 30 * time.Second,
		// Long enough for a generation attempt plus its correction pass.
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// routes builds the router with the middleware chain applied.
func (s *Server) routes() http.Handler {
	auth := middleware.OptionalAuth(s.jwtService)

	mux := http.NewServeMux()
	mux.Handle("POST /enhance", auth(http.HandlerFunc(s.handleEnhance)))
	mux.HandleFunc("POST /target", s.handleTarget)
	mux.Handle("GET /usage", auth(http.HandlerFunc(s.handleUsage)))
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start listens for requests until an interrupt or terminate signal
// arrives, then drains in-flight requests before returning.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("[server] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("[server] shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.close()
	log.Println("[server] stopped")
	return err
}

// close releases all backing connections.
func (s *Server) close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("[server] error closing generation client: %v", err)
		}
	}
	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			log.Printf("[server] error closing redis client: %v", err)
		}
	}
	if s.members != nil {
		s.members.Close()
	}
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware.
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

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is ignored
// because it is only trustworthy behind a known proxy.
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

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}
	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":    "rate_limit_exceeded",
		"message":  "Rate limit exceeded. Please try again later.",
		"limit":    info.Limit,
		"reset_at": info.ResetTime.Format(time.RFC3339),
	})
}
