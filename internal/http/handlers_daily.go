package http

import (
	"net/http"

	"disciplina/internal/core"
)

type checkInRequest struct {
	Mood string `json:"mood"`
}

type checkInResponse struct {
	Day  core.Day `json:"date"`
	Mood string   `json:"mood"`
}

func (s *Server) handleUpsertCheckIn(w http.ResponseWriter, r *http.Request) {
	day, err := dayPath(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid day: "+err.Error())
		return
	}

	var req checkInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c := core.CheckIn{Day: day, Mood: core.Mood(sanitizeInput(req.Mood))}
	if err := c.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.UpsertCheckIn(r.Context(), c); err != nil {
		storeError(r.Context(), w, "upsert check-in", err)
		return
	}
	writeJSON(w, http.StatusOK, checkInResponse{Day: c.Day, Mood: string(c.Mood)})
}

func (s *Server) handleGetCheckIn(w http.ResponseWriter, r *http.Request) {
	day, err := dayPath(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid day: "+err.Error())
		return
	}

	c, found, err := s.store.GetCheckIn(r.Context(), day)
	if err != nil {
		storeError(r.Context(), w, "get check-in", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "no check-in for day")
		return
	}
	writeJSON(w, http.StatusOK, checkInResponse{Day: c.Day, Mood: string(c.Mood)})
}

type journalRequest struct {
	Content string `json:"content"`
}

type journalResponse struct {
	Day     core.Day `json:"date"`
	Content string   `json:"content"`
}

func (s *Server) handleUpsertJournal(w http.ResponseWriter, r *http.Request) {
	day, err := dayPath(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid day: "+err.Error())
		return
	}

	var req journalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e := core.JournalEntry{Day: day, Content: sanitizeInput(req.Content)}
	if err := e.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.UpsertEntry(r.Context(), e); err != nil {
		storeError(r.Context(), w, "upsert journal entry", err)
		return
	}
	writeJSON(w, http.StatusOK, journalResponse{Day: e.Day, Content: e.Content})
}

func (s *Server) handleGetJournal(w http.ResponseWriter, r *http.Request) {
	day, err := dayPath(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid day: "+err.Error())
		return
	}

	e, found, err := s.store.GetEntry(r.Context(), day)
	if err != nil {
		storeError(r.Context(), w, "get journal entry", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "no journal entry for day")
		return
	}
	writeJSON(w, http.StatusOK, journalResponse{Day: e.Day, Content: e.Content})
}
