package server

import (
	"html/template"
	"net/http"
	"time"

	"rh-documentos/internal/authz"
	"rh-documentos/internal/config"
	"rh-documentos/internal/handlers"
	"rh-documentos/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func fmtData(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("02/01/2006")
}

func fmtDataHora(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// formato aceito pelos inputs type="date"
func fmtDataISO(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LogRequest(logger))
	r.Use(middleware.Metrics())

	r.Static("/static", "./web/static")

	r.SetFuncMap(template.FuncMap{
		"fmtData":     fmtData,
		"fmtDataHora": fmtDataHora,
		"fmtDataISO":  fmtDataISO,
	})
	r.LoadHTMLGlob(cfg.TemplateGlob)

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("rh_session", store))

	// limite global do corpo do pedido (uploads)
	maxBody := cfg.MaxUploadMB << 20
	r.Use(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)
		c.Next()
	})

	r.Use(middleware.InjectUser())

	// AUTH
	r.GET("/login", handlers.ShowLogin)
	r.POST("/login", handlers.Login)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	auth.GET("/logout", handlers.Logout)

	// DASHBOARD
	auth.GET("/", handlers.Dashboard)

	// COLABORADORES
	auth.GET("/colaboradores",
		middleware.RequirePermission(authz.PermAddColaborador),
		handlers.ListColaboradores,
	)
	auth.GET("/colaborador/novo",
		middleware.RequirePermission(authz.PermAddColaborador),
		handlers.ShowNovoColaborador,
	)
	auth.POST("/colaborador/novo",
		middleware.RequirePermission(authz.PermAddColaborador),
		handlers.CreateColaborador,
	)
	auth.GET("/colaborador/editar/:id",
		middleware.RequirePermission(authz.PermAddColaborador),
		handlers.ShowEditarColaborador,
	)
	auth.POST("/colaborador/editar/:id",
		middleware.RequirePermission(authz.PermAddColaborador),
		handlers.UpdateColaborador,
	)
	auth.POST("/colaborador/excluir/:id",
		middleware.RequirePermission(authz.PermDeleteDocumento),
		handlers.DeleteColaborador,
	)

	// DOCUMENTOS
	auth.GET("/documentos", handlers.OverviewDocumentos)
	auth.GET("/colaborador/:id/documentos", handlers.ListDocumentosColaborador)

	auth.GET("/documento/novo/:colaborador_id",
		middleware.RequirePermission(authz.PermAddDocumento),
		handlers.ShowNovoDocumento,
	)
	auth.POST("/documento/novo/:colaborador_id",
		middleware.RequirePermission(authz.PermAddDocumento),
		handlers.CreateDocumento,
	)
	auth.GET("/documento/editar/:id",
		middleware.RequirePermission(authz.PermEditDocumento),
		handlers.ShowEditarDocumento,
	)
	auth.POST("/documento/editar/:id",
		middleware.RequirePermission(authz.PermEditDocumento),
		handlers.UpdateDocumento,
	)
	auth.POST("/documento/renovar/:id",
		middleware.RequirePermission(authz.PermRenovarDocumento),
		handlers.RenovarDocumento,
	)
	auth.POST("/documento/excluir/:id",
		middleware.RequirePermission(authz.PermDeleteDocumento),
		handlers.DeleteDocumento,
	)
	auth.GET("/download/:id",
		middleware.RequirePermission(authz.PermDownload),
		handlers.DownloadDocumento,
	)

	// USUÁRIOS — mesma tabela de permissões, sem verificação de papel à parte
	auth.GET("/usuarios",
		middleware.RequirePermission(authz.PermAddUsuario),
		handlers.ListUsuarios,
	)
	auth.GET("/usuario/novo",
		middleware.RequirePermission(authz.PermAddUsuario),
		handlers.ShowNovoUsuario,
	)
	auth.POST("/usuario/novo",
		middleware.RequirePermission(authz.PermAddUsuario),
		handlers.CreateUsuario,
	)

	// AUDITORIA
	auth.GET("/auditoria",
		middleware.RequirePermission(authz.PermVerAuditoria),
		handlers.ListAuditoria,
	)

	// HEALTHCHECK / METRICS
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
