package handlers

import (
	"net/http"

	"rh-documentos/internal/database"
	"rh-documentos/internal/models"

	"github.com/gin-gonic/gin"
)

func ListAuditoria(c *gin.Context) {
	var logs []models.LogAuditoria
	database.DB.
		Preload("Usuario").
		Order("created_at desc").
		Limit(200).
		Find(&logs)

	render(c, http.StatusOK, "auditoria.html", gin.H{
		"logs": logs,
	})
}
