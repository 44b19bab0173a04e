package handlers

import (
	"net/http"

	"jobcard-backend/internal/models"
	"jobcard-backend/internal/services"
	"jobcard-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type VehicleModelHandler struct {
	Service *services.VehicleModelService
}

func NewVehicleModelHandler(service *services.VehicleModelService) *VehicleModelHandler {
	return &VehicleModelHandler{Service: service}
}

func (h *VehicleModelHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *VehicleModelHandler) CreateModel(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVehicleModelRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	m, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, m)
}

func (h *VehicleModelHandler) DeleteModel(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Model deleted")
}
