package http

import (
	"net/http"

	"github.com/oklog/ulid/v2"

	"disciplina/internal/core"
)

type tradeRequest struct {
	Day            core.Day `json:"date"`
	Instrument     string   `json:"instrument"`
	Side           string   `json:"side"`
	EntryPrice     string   `json:"entry_price"`
	ExitPrice      string   `json:"exit_price"`
	PnL            string   `json:"pnl"`
	Tags           []string `json:"tags"`
	EmotionalState string   `json:"emotional_state"`
	Setup          string   `json:"setup"`
	Mistakes       string   `json:"mistakes"`
	Lessons        string   `json:"lessons"`
	Rating         int      `json:"rating"`
}

type tradeResponse struct {
	ID             string   `json:"id"`
	Day            core.Day `json:"date"`
	Instrument     string   `json:"instrument"`
	Side           string   `json:"side"`
	EntryPrice     string   `json:"entry_price,omitempty"`
	ExitPrice      string   `json:"exit_price,omitempty"`
	PnL            string   `json:"pnl,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	EmotionalState string   `json:"emotional_state,omitempty"`
	Setup          string   `json:"setup,omitempty"`
	Mistakes       string   `json:"mistakes,omitempty"`
	Lessons        string   `json:"lessons,omitempty"`
	Rating         int      `json:"rating"`
}

func toTradeResponse(t core.TradeReview) tradeResponse {
	return tradeResponse{
		ID:             t.ID,
		Day:            t.Day,
		Instrument:     t.Instrument,
		Side:           string(t.Side),
		EntryPrice:     t.EntryPrice,
		ExitPrice:      t.ExitPrice,
		PnL:            t.PnL,
		Tags:           t.Tags,
		EmotionalState: t.EmotionalState,
		Setup:          t.Setup,
		Mistakes:       t.Mistakes,
		Lessons:        t.Lessons,
		Rating:         t.Rating,
	}
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t := core.TradeReview{
		ID:             ulid.Make().String(),
		Day:            req.Day,
		Instrument:     sanitizeInput(req.Instrument),
		Side:           core.TradeSide(sanitizeInput(req.Side)),
		EntryPrice:     sanitizeInput(req.EntryPrice),
		ExitPrice:      sanitizeInput(req.ExitPrice),
		PnL:            sanitizeInput(req.PnL),
		Tags:           req.Tags,
		EmotionalState: sanitizeInput(req.EmotionalState),
		Setup:          sanitizeInput(req.Setup),
		Mistakes:       sanitizeInput(req.Mistakes),
		Lessons:        sanitizeInput(req.Lessons),
		Rating:         req.Rating,
	}
	if err := t.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	// Where the sync-aware store is wired, this also queues the trade
	// for export to the trading log.
	if err := s.store.SaveTrade(r.Context(), t); err != nil {
		storeError(r.Context(), w, "save trade", err)
		return
	}

	writeJSON(w, http.StatusCreated, toTradeResponse(t))
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	from, to, err := rangeQuery(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	trades, err := s.store.ListTradesInRange(r.Context(), from, to)
	if err != nil {
		storeError(r.Context(), w, "list trades", err)
		return
	}

	out := make([]tradeResponse, 0, len(trades))
	for _, t := range trades {
		out = append(out, toTradeResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	t, found, err := s.store.GetTrade(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(r.Context(), w, "get trade", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "trade not found")
		return
	}
	writeJSON(w, http.StatusOK, toTradeResponse(t))
}

type riskRequest struct {
	AccountBalance string `json:"account_balance"`
	Drawdown       string `json:"drawdown"`
	DailyRisk      string `json:"daily_risk"`
	PositionSize   string `json:"position_size"`
	RiskReward     string `json:"risk_reward"`
}

type riskResponse struct {
	Day            core.Day `json:"date"`
	AccountBalance string   `json:"account_balance,omitempty"`
	Drawdown       string   `json:"drawdown,omitempty"`
	DailyRisk      string   `json:"daily_risk,omitempty"`
	PositionSize   string   `json:"position_size,omitempty"`
	RiskReward     string   `json:"risk_reward,omitempty"`
}

func toRiskResponse(m core.RiskMetrics) riskResponse {
	return riskResponse{
		Day:            m.Day,
		AccountBalance: m.AccountBalance,
		Drawdown:       m.Drawdown,
		DailyRisk:      m.DailyRisk,
		PositionSize:   m.PositionSize,
		RiskReward:     m.RiskReward,
	}
}

func (s *Server) handleUpsertRiskMetrics(w http.ResponseWriter, r *http.Request) {
	day, err := dayPath(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid day: "+err.Error())
		return
	}

	var req riskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m := core.RiskMetrics{
		Day:            day,
		AccountBalance: sanitizeInput(req.AccountBalance),
		Drawdown:       sanitizeInput(req.Drawdown),
		DailyRisk:      sanitizeInput(req.DailyRisk),
		PositionSize:   sanitizeInput(req.PositionSize),
		RiskReward:     sanitizeInput(req.RiskReward),
	}

	if err := s.store.UpsertRiskMetrics(r.Context(), m); err != nil {
		storeError(r.Context(), w, "upsert risk metrics", err)
		return
	}

	// Return the merged record, not the request.
	merged, _, err := s.store.GetRiskMetrics(r.Context(), day)
	if err != nil {
		storeError(r.Context(), w, "get risk metrics", err)
		return
	}
	writeJSON(w, http.StatusOK, toRiskResponse(merged))
}

func (s *Server) handleGetRiskMetrics(w http.ResponseWriter, r *http.Request) {
	day, err := dayPath(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid day: "+err.Error())
		return
	}

	m, found, err := s.store.GetRiskMetrics(r.Context(), day)
	if err != nil {
		storeError(r.Context(), w, "get risk metrics", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "no risk metrics for day")
		return
	}
	writeJSON(w, http.StatusOK, toRiskResponse(m))
}
