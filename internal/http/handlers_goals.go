package http

import (
	"net/http"

	"github.com/oklog/ulid/v2"

	"disciplina/internal/core"
)

type goalRequest struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Target      string   `json:"target"`
	Current     string   `json:"current"`
	Unit        string   `json:"unit"`
	Deadline    core.Day `json:"deadline"`
	Category    string   `json:"category"`
}

type goalResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Target      string   `json:"target,omitempty"`
	Current     string   `json:"current,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Deadline    core.Day `json:"deadline,omitempty"`
	Category    string   `json:"category,omitempty"`
	Active      bool     `json:"active"`
}

func toGoalResponse(g core.Goal) goalResponse {
	return goalResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Target:      g.Target,
		Current:     g.Current,
		Unit:        g.Unit,
		Deadline:    g.Deadline,
		Category:    g.Category,
		Active:      g.Active,
	}
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := sanitizeInput(req.ID)
	if id == "" {
		id = ulid.Make().String()
	}

	g := core.Goal{
		ID:          id,
		Title:       sanitizeInput(req.Title),
		Description: sanitizeInput(req.Description),
		Target:      sanitizeInput(req.Target),
		Current:     sanitizeInput(req.Current),
		Unit:        sanitizeInput(req.Unit),
		Deadline:    req.Deadline,
		Category:    sanitizeInput(req.Category),
		Active:      true,
	}
	if err := g.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.SaveGoal(r.Context(), g); err != nil {
		storeError(r.Context(), w, "save goal", err)
		return
	}
	writeJSON(w, http.StatusCreated, toGoalResponse(g))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"

	goals, err := s.store.ListGoals(r.Context(), activeOnly)
	if err != nil {
		storeError(r.Context(), w, "list goals", err)
		return
	}

	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	g, found, err := s.store.GetGoal(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(r.Context(), w, "get goal", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

type goalProgressRequest struct {
	Current string `json:"current"`
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	var req goalProgressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, found, err := s.store.GetGoal(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(r.Context(), w, "get goal", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	g.Current = sanitizeInput(req.Current)
	if err := s.store.SaveGoal(r.Context(), g); err != nil {
		storeError(r.Context(), w, "save goal", err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

func (s *Server) handleDeactivateGoal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, found, err := s.store.GetGoal(r.Context(), id); err != nil {
		storeError(r.Context(), w, "get goal", err)
		return
	} else if !found {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	if err := s.store.DeactivateGoal(r.Context(), id); err != nil {
		storeError(r.Context(), w, "deactivate goal", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
