package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"disciplina/internal/core"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads a size-limited JSON body into dst, rejecting
// unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// dayPath parses the {day} path segment as a canonical day.
func dayPath(r *http.Request) (core.Day, error) {
	return core.ParseDay(r.PathValue("day"))
}

// rangeQuery parses the from/to query parameters as canonical days.
func rangeQuery(r *http.Request) (core.Day, core.Day, error) {
	from, err := core.ParseDay(r.URL.Query().Get("from"))
	if err != nil {
		return "", "", fmt.Errorf("invalid from: %w", err)
	}
	to, err := core.ParseDay(r.URL.Query().Get("to"))
	if err != nil {
		return "", "", fmt.Errorf("invalid to: %w", err)
	}
	return from, to, nil
}

// dayQuery parses an optional ?day= parameter, defaulting to today.
func dayQuery(r *http.Request) (core.Day, error) {
	v := strings.TrimSpace(r.URL.Query().Get("day"))
	if v == "" {
		return core.DayOf(time.Now()), nil
	}
	return core.ParseDay(v)
}

func intQuery(r *http.Request, name string) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

// sanitizeInput trims free-text fields and strips control characters.
// CRLF line endings are normalized to LF so pasted journal text keeps
// its line breaks.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// storeError maps a backend failure onto a 500 without leaking
// internals to the client.
func storeError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	slog.ErrorContext(ctx, "Storage operation failed", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, "storage failure")
}
