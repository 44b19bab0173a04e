package handlers

import (
	"net/http"

	"jobcard-backend/internal/services"
	"jobcard-backend/internal/timeutil"
	"jobcard-backend/pkg/utils"
)

type StatsHandler struct {
	Service *services.StatsService
}

func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{Service: service}
}

// Daily returns the amount collected on jobcards dated today
func (h *StatsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.DailyTotal(r.Context(), timeutil.Now())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}
