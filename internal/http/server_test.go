package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disciplina/internal/store/memory"
)

func newTestServer() *Server {
	return NewServer(":0", memory.NewFromSeedFile(""))
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst))
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer()

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := doJSON(t, srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestHabitLifecycle(t *testing.T) {
	srv := newTestServer()

	rr := doJSON(t, srv, http.MethodPost, "/api/habits", `{"name":"Review open positions"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created habitResponse
	decodeBody(t, rr, &created)
	assert.NotEmpty(t, created.ID, "missing id gets generated")
	assert.True(t, created.Active)

	rr = doJSON(t, srv, http.MethodGet, "/api/habits/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, srv, http.MethodDelete, "/api/habits/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	// Soft-deleted habits stay fetchable but leave the active list.
	rr = doJSON(t, srv, http.MethodGet, "/api/habits/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, srv, http.MethodGet, "/api/habits", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var active []habitResponse
	decodeBody(t, rr, &active)
	for _, h := range active {
		assert.NotEqual(t, created.ID, h.ID)
	}
}

func TestHabitValidation(t *testing.T) {
	srv := newTestServer()

	rr := doJSON(t, srv, http.MethodPost, "/api/habits", `{"name":"  "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = doJSON(t, srv, http.MethodPost, "/api/habits", `{broken`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, srv, http.MethodGet, "/api/habits/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCompletionEndpoints(t *testing.T) {
	srv := newTestServer()

	rr := doJSON(t, srv, http.MethodPut, "/api/habits/habit-journal/completions/2024-03-01", `{"completed":true}`)
	require.Equal(t, http.StatusOK, rr.Code)

	// Upsert replaces, never duplicates.
	rr = doJSON(t, srv, http.MethodPut, "/api/habits/habit-journal/completions/2024-03-01", `{"completed":false}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, srv, http.MethodGet, "/api/habits/habit-journal/completions", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got []completionResponse
	decodeBody(t, rr, &got)
	require.Len(t, got, 1)
	assert.False(t, got[0].Completed)

	rr = doJSON(t, srv, http.MethodPut, "/api/habits/habit-journal/completions/2024-3-1", `{"completed":true}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, "non-canonical day rejected")

	rr = doJSON(t, srv, http.MethodPut, "/api/habits/unknown/completions/2024-03-01", `{"completed":true}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHabitStatsEndpoint(t *testing.T) {
	srv := newTestServer()

	for _, day := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
		rr := doJSON(t, srv, http.MethodPut, "/api/habits/habit-journal/completions/"+day, `{"completed":true}`)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := doJSON(t, srv, http.MethodGet, "/api/habits/habit-journal/stats?day=2024-03-03", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var stats struct {
		CurrentStreak  int  `json:"currentStreak"`
		CompletedToday bool `json:"completedToday"`
	}
	decodeBody(t, rr, &stats)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.True(t, stats.CompletedToday)
}

func TestCheckInEndpoints(t *testing.T) {
	srv := newTestServer()

	rr := doJSON(t, srv, http.MethodGet, "/api/checkins/2024-03-01", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, srv, http.MethodPut, "/api/checkins/2024-03-01", `{"mood":"ecstatic"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = doJSON(t, srv, http.MethodPut, "/api/checkins/2024-03-01", `{"mood":"stressed"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	// Second upsert replaces the day's mood.
	rr = doJSON(t, srv, http.MethodPut, "/api/checkins/2024-03-01", `{"mood":"good"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, srv, http.MethodGet, "/api/checkins/2024-03-01", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got checkInResponse
	decodeBody(t, rr, &got)
	assert.Equal(t, "good", got.Mood)
}

func TestJournalEndpoints(t *testing.T) {
	srv := newTestServer()

	rr := doJSON(t, srv, http.MethodPut, "/api/journal/2024-03-01", `{"content":"Stuck to the plan today."}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, srv, http.MethodGet, "/api/journal/2024-03-01", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got journalResponse
	decodeBody(t, rr, &got)
	assert.Equal(t, "Stuck to the plan today.", got.Content)

	rr = doJSON(t, srv, http.MethodGet, "/api/journal/2024-03-02", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTradeEndpoints(t *testing.T) {
	srv := newTestServer()

	body := `{"date":"2024-03-01","instrument":"ES","side":"long","pnl":"125.50","rating":4,"emotional_state":"calm"}`
	rr := doJSON(t, srv, http.MethodPost, "/api/trades", body)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created tradeResponse
	decodeBody(t, rr, &created)
	assert.NotEmpty(t, created.ID)

	rr = doJSON(t, srv, http.MethodGet, "/api/trades/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, srv, http.MethodPost, "/api/trades", `{"date":"2024-03-01","instrument":"ES","side":"sideways"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = doJSON(t, srv, http.MethodGet, "/api/trades?from=2024-03-01&to=2024-03-31", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var listed []tradeResponse
	decodeBody(t, rr, &listed)
	require.Len(t, listed, 1)

	rr = doJSON(t, srv, http.MethodGet, "/api/trades?from=2024-03-01", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, "missing to rejected")
}

func TestGoalEndpoints(t *testing.T) {
	srv := newTestServer()

	rr := doJSON(t, srv, http.MethodPost, "/api/goals", `{"title":"Green month","target":"1000","current":"0","unit":"USD"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created goalResponse
	decodeBody(t, rr, &created)

	rr = doJSON(t, srv, http.MethodPut, "/api/goals/"+created.ID+"/progress", `{"current":"250"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var updated goalResponse
	decodeBody(t, rr, &updated)
	assert.Equal(t, "250", updated.Current)

	rr = doJSON(t, srv, http.MethodDelete, "/api/goals/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = doJSON(t, srv, http.MethodGet, "/api/goals", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var active []goalResponse
	decodeBody(t, rr, &active)
	assert.Empty(t, active)
}

func TestRiskMetricsMerge(t *testing.T) {
	srv := newTestServer()

	rr := doJSON(t, srv, http.MethodPut, "/api/risk/2024-03-01", `{"account_balance":"25000","daily_risk":"1.5"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	// An empty field leaves the stored value alone.
	rr = doJSON(t, srv, http.MethodPut, "/api/risk/2024-03-01", `{"drawdown":"3.2"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var got riskResponse
	decodeBody(t, rr, &got)
	assert.Equal(t, "25000", got.AccountBalance)
	assert.Equal(t, "1.5", got.DailyRisk)
	assert.Equal(t, "3.2", got.Drawdown)
}

func TestAnalyticsEndpoints(t *testing.T) {
	srv := newTestServer()

	rr := doJSON(t, srv, http.MethodPut, "/api/habits/habit-journal/completions/2024-03-01", `{"completed":true}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, srv, http.MethodGet, "/api/analytics/weekly?from=2024-03-01&to=2024-03-07", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var series []struct {
		Date string `json:"date"`
		Rate int    `json:"completionRate"`
	}
	decodeBody(t, rr, &series)
	require.Len(t, series, 7)
	assert.Equal(t, "2024-03-01", series[0].Date)

	rr = doJSON(t, srv, http.MethodGet, "/api/analytics/monthly?year=2024&month=3", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var summary struct {
		Year        int `json:"year"`
		TotalHabits int `json:"totalHabits"`
	}
	decodeBody(t, rr, &summary)
	assert.Equal(t, 2024, summary.Year)
	assert.Equal(t, 4, summary.TotalHabits)

	rr = doJSON(t, srv, http.MethodGet, "/api/analytics/monthly?year=2024&month=13", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = doJSON(t, srv, http.MethodGet, "/api/analytics/trading?from=2024-03-01&to=2024-03-31", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var stats struct {
		TotalTrades int `json:"totalTrades"`
	}
	decodeBody(t, rr, &stats)
	assert.Equal(t, 0, stats.TotalTrades)
}

func TestRateLimitOnMutatingRequests(t *testing.T) {
	srv := newTestServer()

	// One client gets 60 mutating requests per minute.
	for i := 0; i < 60; i++ {
		rr := doJSON(t, srv, http.MethodPut, "/api/journal/2024-03-01", `{"content":"tick"}`)
		require.Equal(t, http.StatusOK, rr.Code, "request %d", i+1)
	}

	rr := doJSON(t, srv, http.MethodPut, "/api/journal/2024-03-01", `{"content":"tick"}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))

	// Reads are never limited.
	rr = doJSON(t, srv, http.MethodGet, "/api/journal/2024-03-01", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer()

	rr := doJSON(t, srv, http.MethodGet, "/api/habits", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
}
