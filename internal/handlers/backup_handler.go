package handlers

import (
	"net/http"

	"jobcard-backend/internal/services"
	"jobcard-backend/pkg/utils"
)

type BackupHandler struct {
	Service *services.BackupService
}

// NewBackupHandler accepts a nil service when backups are disabled
func NewBackupHandler(service *services.BackupService) *BackupHandler {
	return &BackupHandler{Service: service}
}

func (h *BackupHandler) RunBackup(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		utils.Message(w, http.StatusServiceUnavailable, "Backup storage is not configured")
		return
	}
	res, err := h.Service.Run(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, res)
}
