package api

import (
	"net/http"

	"fitcoach/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

// BackupHandler exposes the state snapshot upload.
type BackupHandler struct {
	backups service.BackupService
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backups service.BackupService) *BackupHandler {
	return &BackupHandler{backups: backups}
}

// Backup handles POST /backup and returns the object key of the uploaded
// snapshot.
func (h *BackupHandler) Backup(c *gin.Context) {
	key, err := h.backups.Backup(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key})
}
