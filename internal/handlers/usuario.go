package handlers

import (
	"net/http"
	"strings"

	"rh-documentos/internal/database"
	"rh-documentos/internal/flash"
	"rh-documentos/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func ListUsuarios(c *gin.Context) {
	var usuarios []models.Usuario
	database.DB.Order("username asc").Find(&usuarios)

	render(c, http.StatusOK, "usuarios.html", gin.H{
		"usuarios": usuarios,
	})
}

func ShowNovoUsuario(c *gin.Context) {
	render(c, http.StatusOK, "usuario_form.html", gin.H{"error": ""})
}

type usuarioForm struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Role     string `form:"role"`
}

func CreateUsuario(c *gin.Context) {
	var form usuarioForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "usuario_form.html", gin.H{"error": "Dados inválidos"})
		return
	}

	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)

	if form.Username == "" || form.Email == "" {
		render(c, http.StatusBadRequest, "usuario_form.html", gin.H{"error": "Usuário e email são obrigatórios"})
		return
	}
	if len(form.Password) < 6 {
		render(c, http.StatusBadRequest, "usuario_form.html", gin.H{"error": "Senha deve ter no mínimo 6 caracteres"})
		return
	}

	role := models.UserRole(form.Role)
	switch role {
	case models.RoleVisitante, models.RoleOperador, models.RoleGestor, models.RoleAdministrador:
	default:
		render(c, http.StatusBadRequest, "usuario_form.html", gin.H{"error": "Cargo inválido"})
		return
	}

	var existing models.Usuario
	if err := database.DB.Where("username = ?", form.Username).First(&existing).Error; err == nil {
		render(c, http.StatusBadRequest, "usuario_form.html", gin.H{"error": "Usuário já existe"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		render(c, http.StatusInternalServerError, "usuario_form.html", gin.H{"error": "Erro ao cadastrar usuário"})
		return
	}

	user := models.Usuario{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		render(c, http.StatusInternalServerError, "usuario_form.html", gin.H{"error": "Erro ao cadastrar usuário"})
		return
	}

	audit(c, "criar_usuario", "Cadastrado usuário: "+user.Username, "usuario", user.ID)
	flash.Add(c, "success", "Usuário cadastrado com sucesso!")
	c.Redirect(http.StatusFound, "/usuarios")
}
