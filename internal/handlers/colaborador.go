package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"rh-documentos/internal/database"
	"rh-documentos/internal/flash"
	"rh-documentos/internal/models"
	"rh-documentos/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ListColaboradores(c *gin.Context) {
	var colaboradores []models.Colaborador
	database.DB.Order("nome asc").Find(&colaboradores)

	render(c, http.StatusOK, "colaboradores.html", gin.H{
		"colaboradores": colaboradores,
	})
}

type colaboradorForm struct {
	Nome         string
	Email        string
	Departamento string
	Cargo        string
	DataAdmissao *time.Time
	err          string
}

func parseColaboradorForm(c *gin.Context) colaboradorForm {
	form := colaboradorForm{
		Nome:         strings.TrimSpace(c.PostForm("nome")),
		Email:        strings.TrimSpace(c.PostForm("email")),
		Departamento: strings.TrimSpace(c.PostForm("departamento")),
		Cargo:        strings.TrimSpace(c.PostForm("cargo")),
	}

	if form.Nome == "" {
		form.err = "Nome é obrigatório"
		return form
	}
	if len(form.Nome) > 100 {
		form.err = "Nome deve ter no máximo 100 caracteres"
		return form
	}

	if v := strings.TrimSpace(c.PostForm("data_admissao")); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			form.err = "Data de admissão inválida"
			return form
		}
		form.DataAdmissao = &d
	}

	return form
}

func ShowNovoColaborador(c *gin.Context) {
	render(c, http.StatusOK, "colaborador_form.html", gin.H{
		"title": "Novo Colaborador",
		"error": "",
	})
}

func CreateColaborador(c *gin.Context) {
	form := parseColaboradorForm(c)
	if form.err != "" {
		render(c, http.StatusBadRequest, "colaborador_form.html", gin.H{
			"title": "Novo Colaborador",
			"error": form.err,
		})
		return
	}

	colaborador := models.Colaborador{
		Nome:         form.Nome,
		Email:        form.Email,
		Departamento: form.Departamento,
		Cargo:        form.Cargo,
		DataAdmissao: form.DataAdmissao,
	}

	if err := database.DB.Create(&colaborador).Error; err != nil {
		flash.Add(c, "danger", "Erro ao cadastrar colaborador")
		c.Redirect(http.StatusFound, "/colaboradores")
		return
	}

	audit(c, "criar_colaborador", "Cadastrado colaborador: "+colaborador.Nome, "colaborador", colaborador.ID)
	flash.Add(c, "success", "Colaborador cadastrado com sucesso!")
	c.Redirect(http.StatusFound, "/colaboradores")
}

func ShowEditarColaborador(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "ID inválido")
		return
	}

	var colaborador models.Colaborador
	if err := database.DB.First(&colaborador, id).Error; err != nil {
		c.String(http.StatusNotFound, "Colaborador não encontrado")
		return
	}

	render(c, http.StatusOK, "colaborador_form.html", gin.H{
		"title":       "Editar Colaborador",
		"colaborador": colaborador,
		"error":       "",
	})
}

func UpdateColaborador(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "ID inválido")
		return
	}

	var colaborador models.Colaborador
	if err := database.DB.First(&colaborador, id).Error; err != nil {
		c.String(http.StatusNotFound, "Colaborador não encontrado")
		return
	}

	form := parseColaboradorForm(c)
	if form.err != "" {
		render(c, http.StatusBadRequest, "colaborador_form.html", gin.H{
			"title":       "Editar Colaborador",
			"colaborador": colaborador,
			"error":       form.err,
		})
		return
	}

	colaborador.Nome = form.Nome
	colaborador.Email = form.Email
	colaborador.Departamento = form.Departamento
	colaborador.Cargo = form.Cargo
	colaborador.DataAdmissao = form.DataAdmissao

	if err := database.DB.Save(&colaborador).Error; err != nil {
		flash.Add(c, "danger", "Erro ao atualizar colaborador")
		c.Redirect(http.StatusFound, "/colaboradores")
		return
	}

	audit(c, "editar_colaborador", "Atualizado colaborador: "+colaborador.Nome, "colaborador", colaborador.ID)
	flash.Add(c, "success", "Colaborador atualizado com sucesso!")
	c.Redirect(http.StatusFound, "/colaboradores")
}

// DeleteColaborador remove o colaborador e, em cascata, todos os seus
// documentos. As linhas saem primeiro na transação; os arquivos só depois
// do commit.
func DeleteColaborador(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "ID inválido")
		return
	}

	var colaborador models.Colaborador
	if err := database.DB.Preload("Documentos").First(&colaborador, id).Error; err != nil {
		c.String(http.StatusNotFound, "Colaborador não encontrado")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("colaborador_id = ?", colaborador.ID).Delete(&models.Documento{}).Error; err != nil {
			return err
		}
		return tx.Delete(&colaborador).Error
	})
	if err != nil {
		flash.Add(c, "danger", "Erro ao excluir colaborador")
		c.Redirect(http.StatusFound, "/colaboradores")
		return
	}

	for _, doc := range colaborador.Documentos {
		_ = storage.Remove(doc.Arquivo)
	}

	audit(c, "excluir_colaborador", "Excluído colaborador: "+colaborador.Nome, "colaborador", colaborador.ID)
	flash.Add(c, "success", "Colaborador excluído com sucesso!")
	c.Redirect(http.StatusFound, "/colaboradores")
}
