package handlers

import (
	"net/http"
	"time"

	"rh-documentos/internal/database"
	"rh-documentos/internal/models"

	"github.com/gin-gonic/gin"
)

func Dashboard(c *gin.Context) {
	hoje := time.Now()

	vencidos, err := database.DocumentosVencidos(hoje)
	if err != nil {
		c.String(http.StatusInternalServerError, "Erro ao consultar documentos")
		return
	}
	proximos, err := database.DocumentosProximosVencer(hoje)
	if err != nil {
		c.String(http.StatusInternalServerError, "Erro ao consultar documentos")
		return
	}

	var totalColaboradores, totalDocumentos int64
	database.DB.Model(&models.Colaborador{}).Count(&totalColaboradores)
	database.DB.Model(&models.Documento{}).Count(&totalDocumentos)

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"documentosVencidos": vencidos,
		"documentosProximos": proximos,
		"totalColaboradores": totalColaboradores,
		"totalDocumentos":    totalDocumentos,
	})
}
