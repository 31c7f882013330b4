package handler

import (
	"net/http"

	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type authResponse struct {
	Token   string         `json:"token"`
	User    *model.User    `json:"user"`
	Profile *model.Profile `json:"profile,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in model.RegisterInput
	err := decodeJSON(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, profile, err := h.authService.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user, Profile: profile})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	err := decodeJSON(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.authService.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
