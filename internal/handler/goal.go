package handler

import (
	"net/http"

	"github.com/Admintools08/BP/internal/ctxkeys"
	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goalService.Goals(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.GoalInput
	err := decodeJSON(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goalService.Create(r.Context(), ctxkeys.UserID(r.Context()), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	goal, err := h.goalService.Goal(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in model.GoalInput
	err := decodeJSON(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goalService.Update(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Transition(w http.ResponseWriter, r *http.Request) {
	var in statusRequest
	err := decodeJSON(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goalService.Transition(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"), in.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.goalService.Delete(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
