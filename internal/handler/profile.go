package handler

import (
	"net/http"

	"github.com/Admintools08/BP/internal/ctxkeys"
	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.ByUserID(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in model.ProfileInput
	err := decodeJSON(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.profileService.Update(r.Context(), ctxkeys.UserID(r.Context()), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
