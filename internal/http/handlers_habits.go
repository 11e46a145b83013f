package http

import (
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"disciplina/internal/core"
)

type habitRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type habitResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at"`
}

func toHabitResponse(h core.Habit) habitResponse {
	return habitResponse{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		Category:    h.Category,
		Active:      h.Active,
		CreatedAt:   h.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := sanitizeInput(req.ID)
	if id == "" {
		id = ulid.Make().String()
	}

	h := core.Habit{
		ID:          id,
		Name:        sanitizeInput(req.Name),
		Description: sanitizeInput(req.Description),
		Category:    sanitizeInput(req.Category),
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.CreateHabit(r.Context(), h); err != nil {
		storeError(r.Context(), w, "create habit", err)
		return
	}

	writeJSON(w, http.StatusCreated, toHabitResponse(h))
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"

	habits, err := s.store.ListHabits(r.Context(), activeOnly)
	if err != nil {
		storeError(r.Context(), w, "list habits", err)
		return
	}

	out := make([]habitResponse, 0, len(habits))
	for _, h := range habits {
		out = append(out, toHabitResponse(h))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetHabit(w http.ResponseWriter, r *http.Request) {
	h, found, err := s.store.GetHabit(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(r.Context(), w, "get habit", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}
	writeJSON(w, http.StatusOK, toHabitResponse(h))
}

func (s *Server) handleDeactivateHabit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, found, err := s.store.GetHabit(r.Context(), id); err != nil {
		storeError(r.Context(), w, "get habit", err)
		return
	} else if !found {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}

	if err := s.store.DeactivateHabit(r.Context(), id); err != nil {
		storeError(r.Context(), w, "deactivate habit", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type completionRequest struct {
	Completed bool `json:"completed"`
}

type completionResponse struct {
	HabitID   string   `json:"habit_id"`
	Day       core.Day `json:"date"`
	Completed bool     `json:"completed"`
}

func (s *Server) handleUpsertCompletion(w http.ResponseWriter, r *http.Request) {
	day, err := dayPath(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid day: "+err.Error())
		return
	}

	var req completionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := r.PathValue("id")
	if _, found, err := s.store.GetHabit(r.Context(), id); err != nil {
		storeError(r.Context(), w, "get habit", err)
		return
	} else if !found {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}

	c := core.HabitCompletion{HabitID: id, Day: day, Completed: req.Completed}
	if err := s.store.UpsertCompletion(r.Context(), c); err != nil {
		storeError(r.Context(), w, "upsert completion", err)
		return
	}

	writeJSON(w, http.StatusOK, completionResponse{HabitID: c.HabitID, Day: c.Day, Completed: c.Completed})
}

func (s *Server) handleListCompletions(w http.ResponseWriter, r *http.Request) {
	completions, err := s.store.ListHabitCompletions(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(r.Context(), w, "list completions", err)
		return
	}

	out := make([]completionResponse, 0, len(completions))
	for _, c := range completions {
		out = append(out, completionResponse{HabitID: c.HabitID, Day: c.Day, Completed: c.Completed})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHabitStats(w http.ResponseWriter, r *http.Request) {
	day, err := dayQuery(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid day: "+err.Error())
		return
	}

	id := r.PathValue("id")
	if _, found, err := s.store.GetHabit(r.Context(), id); err != nil {
		storeError(r.Context(), w, "get habit", err)
		return
	} else if !found {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}

	stats, err := s.agg.HabitStats(r.Context(), id, day)
	if err != nil {
		storeError(r.Context(), w, "habit stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
