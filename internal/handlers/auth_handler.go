package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"jobcard-backend/internal/models"
	"jobcard-backend/internal/services"
	"jobcard-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.UserService
}

func NewAuthHandler(service *services.UserService) *AuthHandler {
	return &AuthHandler{Service: service}
}

// Login returns the public profile and a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	resp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	if err := h.Service.ChangePassword(r.Context(), &req); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Password updated successfully")
}

// Seed creates the default accounts that are missing
func (h *AuthHandler) Seed(w http.ResponseWriter, r *http.Request) {
	created, err := h.Service.Seed(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	if len(created) == 0 {
		utils.Message(w, http.StatusOK, "All default users already exist")
		return
	}
	utils.Message(w, http.StatusOK, fmt.Sprintf("Created users: %s", strings.Join(created, ", ")))
}
