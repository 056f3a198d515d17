package controllers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/backup"
	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/utils"
)

type BackupController struct {
	Manager *backup.Manager
}

func NewBackupController(m *backup.Manager) *BackupController {
	return &BackupController{Manager: m}
}

// CreateBackup -> POST /api/backup (somente admin)
func (bc *BackupController) CreateBackup(c *gin.Context) {
	path, stats, err := bc.Manager.Export()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Backup created", gin.H{
		"file":  path,
		"stats": stats,
	})
}

// RestoreBackup -> POST /api/backup/restore (somente admin)
func (bc *BackupController) RestoreBackup(c *gin.Context) {
	var req struct {
		File string `json:"file" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := bc.Manager.Import(req.File); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			utils.RespondError(c, http.StatusNotFound, errors.New("backup file not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Backup restored", gin.H{"file": req.File})
}

// AutoBackup -> POST /api/backup/auto (somente admin), com rotacao
func (bc *BackupController) AutoBackup(c *gin.Context) {
	path, err := bc.Manager.AutoBackup()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Automatic backup created", gin.H{"file": path})
}
