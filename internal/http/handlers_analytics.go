package http

import (
	"net/http"
	"time"
)

func (s *Server) handleWeeklyProgress(w http.ResponseWriter, r *http.Request) {
	from, to, err := rangeQuery(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	series, err := s.agg.WeeklyProgress(r.Context(), from, to)
	if err != nil {
		storeError(r.Context(), w, "weekly progress", err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if r.URL.Query().Get("year") != "" || r.URL.Query().Get("month") != "" {
		var err error
		if year, err = intQuery(r, "year"); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if month, err = intQuery(r, "month"); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}
	if month < 1 || month > 12 {
		writeError(w, http.StatusUnprocessableEntity, "month out of range")
		return
	}

	summary, err := s.agg.MonthlySummary(r.Context(), year, month)
	if err != nil {
		storeError(r.Context(), w, "monthly summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleTradingStats(w http.ResponseWriter, r *http.Request) {
	from, to, err := rangeQuery(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	stats, err := s.agg.TradingStats(r.Context(), from, to)
	if err != nil {
		storeError(r.Context(), w, "trading stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
