// Package http is the JSON transport: it validates payloads, maps the
// tracker's operations onto endpoints, and translates failures into
// status codes. Derived stats are computed on demand, never cached.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"disciplina/internal/analytics"
	"disciplina/internal/store"
)

type Server struct {
	http.Server
	store       store.Store
	agg         *analytics.Aggregator
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

// Simple in-memory rate limiter
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

// startCleanup runs periodic cleanup to remove stale client entries
func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes
func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		if rl.stopCleanup != nil {
			close(rl.stopCleanup)
		}
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientInfo{
			lastRequest: now,
			requests:    1,
		}
		return true
	}

	// Reset counter if more than 1 minute has passed
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	// Allow up to 60 requests per minute
	client.requests++
	client.lastRequest = now

	return client.requests <= 60
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, st store.Store) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:       st,
		agg:         analytics.New(st),
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	// Habits and completions
	mux.HandleFunc("POST /api/habits", s.withSecurityHeaders(s.handleCreateHabit))
	mux.HandleFunc("GET /api/habits", s.withSecurityHeaders(s.handleListHabits))
	mux.HandleFunc("GET /api/habits/{id}", s.withSecurityHeaders(s.handleGetHabit))
	mux.HandleFunc("DELETE /api/habits/{id}", s.withSecurityHeaders(s.handleDeactivateHabit))
	mux.HandleFunc("PUT /api/habits/{id}/completions/{day}", s.withSecurityHeaders(s.handleUpsertCompletion))
	mux.HandleFunc("GET /api/habits/{id}/completions", s.withSecurityHeaders(s.handleListCompletions))
	mux.HandleFunc("GET /api/habits/{id}/stats", s.withSecurityHeaders(s.handleHabitStats))

	// Daily records: check-ins and journal
	mux.HandleFunc("PUT /api/checkins/{day}", s.withSecurityHeaders(s.handleUpsertCheckIn))
	mux.HandleFunc("GET /api/checkins/{day}", s.withSecurityHeaders(s.handleGetCheckIn))
	mux.HandleFunc("PUT /api/journal/{day}", s.withSecurityHeaders(s.handleUpsertJournal))
	mux.HandleFunc("GET /api/journal/{day}", s.withSecurityHeaders(s.handleGetJournal))

	// Trade reviews and risk metrics
	mux.HandleFunc("POST /api/trades", s.withSecurityHeaders(s.handleCreateTrade))
	mux.HandleFunc("GET /api/trades", s.withSecurityHeaders(s.handleListTrades))
	mux.HandleFunc("GET /api/trades/{id}", s.withSecurityHeaders(s.handleGetTrade))
	mux.HandleFunc("PUT /api/risk/{day}", s.withSecurityHeaders(s.handleUpsertRiskMetrics))
	mux.HandleFunc("GET /api/risk/{day}", s.withSecurityHeaders(s.handleGetRiskMetrics))

	// Goals
	mux.HandleFunc("POST /api/goals", s.withSecurityHeaders(s.handleCreateGoal))
	mux.HandleFunc("GET /api/goals", s.withSecurityHeaders(s.handleListGoals))
	mux.HandleFunc("GET /api/goals/{id}", s.withSecurityHeaders(s.handleGetGoal))
	mux.HandleFunc("PUT /api/goals/{id}/progress", s.withSecurityHeaders(s.handleGoalProgress))
	mux.HandleFunc("DELETE /api/goals/{id}", s.withSecurityHeaders(s.handleDeactivateGoal))

	// Analytics
	mux.HandleFunc("GET /api/analytics/weekly", s.withSecurityHeaders(s.handleWeeklyProgress))
	mux.HandleFunc("GET /api/analytics/monthly", s.withSecurityHeaders(s.handleMonthlySummary))
	mux.HandleFunc("GET /api/analytics/trading", s.withSecurityHeaders(s.handleTradingStats))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and
// request logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		// Rate limit mutating requests only.
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			if !s.rateLimiter.allow(clientIP) {
				slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
