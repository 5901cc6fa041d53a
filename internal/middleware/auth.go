package middleware

import (
	"net/http"

	"rh-documentos/internal/authz"
	"rh-documentos/internal/flash"
	"rh-documentos/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		userID := sess.Get("user_id")
		if userID == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission consulta a tabela única de permissões; sem permissão o
// pedido volta para o dashboard com aviso, nenhum efeito parcial.
func RequirePermission(perm authz.Permissao) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		roleStr, _ := sess.Get("role").(string)

		if !authz.Can(models.UserRole(roleStr), perm) {
			flash.Add(c, "warning", "Acesso não autorizado")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
