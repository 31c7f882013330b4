package handler

import (
	"net/http"

	"github.com/Admintools08/BP/internal/clock"
	"github.com/Admintools08/BP/internal/ctxkeys"
	"github.com/Admintools08/BP/internal/service"
)

type DashboardHandler struct {
	progressService *service.ProgressService
	clock           clock.Clock
	targetHours     float64
}

func NewDashboardHandler(progressService *service.ProgressService, clk clock.Clock, targetHours float64) *DashboardHandler {
	return &DashboardHandler{
		progressService: progressService,
		clock:           clk,
		targetHours:     targetHours,
	}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.progressService.DashboardStats(r.Context(), ctxkeys.UserID(r.Context()), h.clock.Now(), h.targetHours)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
