package handlers

import (
	"rh-documentos/internal/database"
	"rh-documentos/internal/flash"
	"rh-documentos/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// render — camada sobre c.HTML que injeta o usuário corrente
// (posto pelo middleware.InjectUser) e as mensagens flash pendentes.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if uVal, ok := c.Get("CurrentUser"); ok {
		switch u := uVal.(type) {
		case models.Usuario:
			data["CurrentUser"] = u
			data["CurrentUsername"] = u.Username
			data["CurrentUserRole"] = u.Role
		case *models.Usuario:
			data["CurrentUser"] = u
			data["CurrentUsername"] = u.Username
			data["CurrentUserRole"] = u.Role
		}
	}

	if _, ok := data["Flashes"]; !ok {
		data["Flashes"] = flash.Pop(c)
	}

	c.HTML(status, tmpl, data)
}

func currentUserID(c *gin.Context) uint {
	sess := sessions.Default(c)
	uid, _ := sess.Get("user_id").(uint)
	return uid
}

// audit grava a trilha de auditoria com os metadados do pedido
func audit(c *gin.Context, acao, descricao, tabela string, registroID uint) {
	database.CreateAuditLog(
		currentUserID(c),
		acao,
		descricao,
		tabela,
		registroID,
		c.ClientIP(),
		c.Request.UserAgent(),
	)
}
