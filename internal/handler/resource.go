package handler

import (
	"net/http"

	"github.com/Admintools08/BP/internal/service"
)

type ResourceHandler struct {
	ledger *service.ResourceLedger
}

func NewResourceHandler(ledger *service.ResourceLedger) *ResourceHandler {
	return &ResourceHandler{
		ledger: ledger,
	}
}

// List returns the shared ledger, most used first.
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	resources, err := h.ledger.ListResources(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}
