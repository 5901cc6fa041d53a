package handlers

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"rh-documentos/internal/database"
	"rh-documentos/internal/flash"
	"rh-documentos/internal/models"
	"rh-documentos/internal/storage"
	"rh-documentos/internal/validade"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// extensões aceitas no upload: documentos e imagens
var extensoesPermitidas = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

func extensaoPermitida(filename string) bool {
	return extensoesPermitidas[strings.ToLower(filepath.Ext(filename))]
}

type documentoView struct {
	models.Documento
	Status validade.Status
}

func documentoViews(docs []models.Documento, hoje time.Time) []documentoView {
	views := make([]documentoView, 0, len(docs))
	for _, d := range docs {
		views = append(views, documentoView{
			Documento: d,
			Status:    validade.StatusDocumento(d.TipoValidade, d.DataValidade, hoje),
		})
	}
	return views
}

// GET /documentos — visão geral por colaborador, com contagens e busca
// parcial por nome do colaborador.
func OverviewDocumentos(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))

	query := database.DB.Preload("Documentos").Order("nome asc")
	if search != "" {
		query = query.Where("LOWER(nome) LIKE LOWER(?)", "%"+search+"%")
	}

	var colaboradores []models.Colaborador
	query.Find(&colaboradores)

	hoje := time.Now()

	type linha struct {
		models.Colaborador
		TotalDocumentos    int
		DocumentosVencidos int
		DocumentosProximos int
	}

	linhas := make([]linha, 0, len(colaboradores))
	for _, col := range colaboradores {
		l := linha{Colaborador: col, TotalDocumentos: len(col.Documentos)}
		for _, d := range col.Documentos {
			switch validade.StatusDocumento(d.TipoValidade, d.DataValidade, hoje) {
			case validade.StatusVencido:
				l.DocumentosVencidos++
			case validade.StatusProximoVencer:
				l.DocumentosProximos++
			}
		}
		linhas = append(linhas, l)
	}

	render(c, http.StatusOK, "documentos.html", gin.H{
		"colaboradores": linhas,
		"searchQuery":   search,
	})
}

// GET /colaborador/:id/documentos — documentos de um colaborador, com busca
// parcial e insensível a caixa pelo nome do documento.
func ListDocumentosColaborador(c *gin.Context) {
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

	search := strings.TrimSpace(c.Query("search"))

	query := database.DB.Where("colaborador_id = ?", colaborador.ID)
	if search != "" {
		query = query.Where("LOWER(nome) LIKE LOWER(?)", "%"+search+"%")
	}

	var documentos []models.Documento
	query.Order("data_upload desc").Find(&documentos)

	render(c, http.StatusOK, "documentos_colaborador.html", gin.H{
		"colaborador": colaborador,
		"documentos":  documentoViews(documentos, time.Now()),
		"searchQuery": search,
	})
}

type documentoForm struct {
	Nome         string
	TipoValidade models.TipoValidade
	DataValidade *time.Time
	Observacoes  string
	err          string
}

func parseDocumentoForm(c *gin.Context) documentoForm {
	form := documentoForm{
		Nome:         strings.TrimSpace(c.PostForm("nome")),
		TipoValidade: models.TipoValidade(c.PostForm("tipo_validade")),
		Observacoes:  strings.TrimSpace(c.PostForm("observacoes")),
	}

	if form.Nome == "" {
		form.err = "Nome do documento é obrigatório"
		return form
	}

	switch form.TipoValidade {
	case models.TipoIndeterminado, models.Tipo3Meses, models.Tipo6Meses, models.Tipo12Meses, models.TipoPersonalizado:
	default:
		form.err = "Tipo de validade inválido"
		return form
	}

	if v := strings.TrimSpace(c.PostForm("data_validade")); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			form.err = "Data de validade inválida"
			return form
		}
		form.DataValidade = &d
	}

	if form.TipoValidade == models.TipoPersonalizado && form.DataValidade == nil {
		form.err = "Data de validade é obrigatória quando o tipo é \"Data Personalizada\""
		return form
	}

	return form
}

func renderDocumentoForm(c *gin.Context, status int, colaborador models.Colaborador, documento *models.Documento, title, errMsg string) {
	data := gin.H{
		"title":       title,
		"colaborador": colaborador,
		"error":       errMsg,
	}
	if documento != nil {
		data["documento"] = documento
	}
	render(c, status, "documento_form.html", data)
}

func ShowNovoDocumento(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("colaborador_id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "ID inválido")
		return
	}

	var colaborador models.Colaborador
	if err := database.DB.First(&colaborador, id).Error; err != nil {
		c.String(http.StatusNotFound, "Colaborador não encontrado")
		return
	}

	renderDocumentoForm(c, http.StatusOK, colaborador, nil, "Adicionar Novo Documento", "")
}

func salvarUpload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return storage.Save(src, file.Filename)
}

// CreateDocumento grava o arquivo primeiro e deixa o commit no banco como
// último passo; se o banco falhar o arquivo recém-escrito é removido.
func CreateDocumento(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("colaborador_id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "ID inválido")
		return
	}

	var colaborador models.Colaborador
	if err := database.DB.First(&colaborador, id).Error; err != nil {
		c.String(http.StatusNotFound, "Colaborador não encontrado")
		return
	}

	form := parseDocumentoForm(c)
	if form.err != "" {
		renderDocumentoForm(c, http.StatusBadRequest, colaborador, nil, "Adicionar Novo Documento", form.err)
		return
	}

	file, err := c.FormFile("arquivo")
	if err != nil {
		renderDocumentoForm(c, http.StatusBadRequest, colaborador, nil, "Adicionar Novo Documento", "Arquivo é obrigatório")
		return
	}
	if !extensaoPermitida(file.Filename) {
		renderDocumentoForm(c, http.StatusBadRequest, colaborador, nil, "Adicionar Novo Documento", "Apenas documentos e imagens!")
		return
	}

	key, err := salvarUpload(file)
	if err != nil {
		flash.Add(c, "danger", "Erro ao gravar o arquivo")
		c.Redirect(http.StatusFound, "/colaborador/"+strconv.Itoa(id)+"/documentos")
		return
	}

	var personalizada *time.Time
	if form.TipoValidade == models.TipoPersonalizado {
		personalizada = form.DataValidade
	}

	documento := models.Documento{
		ColaboradorID: colaborador.ID,
		Nome:          form.Nome,
		TipoValidade:  form.TipoValidade,
		DataValidade:  validade.CalcularDataValidade(form.TipoValidade, personalizada, time.Now()),
		Arquivo:       key,
		NomeArquivo:   filepath.Base(file.Filename),
		Observacoes:   form.Observacoes,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&documento).Error
	})
	if err != nil {
		_ = storage.Remove(key)
		flash.Add(c, "danger", "Erro ao adicionar documento")
		c.Redirect(http.StatusFound, "/colaborador/"+strconv.Itoa(id)+"/documentos")
		return
	}

	audit(c, "criar_documento", "Adicionado documento: "+documento.Nome, "documento", documento.ID)
	flash.Add(c, "success", "Documento adicionado com sucesso!")
	c.Redirect(http.StatusFound, "/colaborador/"+strconv.Itoa(id)+"/documentos")
}

func ShowEditarDocumento(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "ID inválido")
		return
	}

	var documento models.Documento
	if err := database.DB.Preload("Colaborador").First(&documento, id).Error; err != nil {
		c.String(http.StatusNotFound, "Documento não encontrado")
		return
	}

	renderDocumentoForm(c, http.StatusOK, documento.Colaborador, &documento, "Editar Documento", "")
}

// UpdateDocumento aceita o campo de arquivo vazio — nesse caso o arquivo já
// armazenado permanece inalterado.
func UpdateDocumento(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "ID inválido")
		return
	}

	var documento models.Documento
	if err := database.DB.Preload("Colaborador").First(&documento, id).Error; err != nil {
		c.String(http.StatusNotFound, "Documento não encontrado")
		return
	}

	form := parseDocumentoForm(c)
	if form.err != "" {
		renderDocumentoForm(c, http.StatusBadRequest, documento.Colaborador, &documento, "Editar Documento", form.err)
		return
	}

	antigoArquivo := ""
	if file, err := c.FormFile("arquivo"); err == nil && file.Filename != "" {
		if !extensaoPermitida(file.Filename) {
			renderDocumentoForm(c, http.StatusBadRequest, documento.Colaborador, &documento, "Editar Documento", "Apenas documentos e imagens!")
			return
		}

		key, err := salvarUpload(file)
		if err != nil {
			flash.Add(c, "danger", "Erro ao gravar o arquivo")
			c.Redirect(http.StatusFound, "/colaborador/"+strconv.Itoa(int(documento.ColaboradorID))+"/documentos")
			return
		}

		antigoArquivo = documento.Arquivo
		documento.Arquivo = key
		documento.NomeArquivo = filepath.Base(file.Filename)
	}

	var personalizada *time.Time
	if form.TipoValidade == models.TipoPersonalizado {
		personalizada = form.DataValidade
	}

	documento.Nome = form.Nome
	documento.TipoValidade = form.TipoValidade
	documento.DataValidade = validade.CalcularDataValidade(form.TipoValidade, personalizada, time.Now())
	documento.Observacoes = form.Observacoes

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&documento).Error
	})
	if err != nil {
		if antigoArquivo != "" {
			// desfaz o upload novo, o registro continua apontando para o antigo
			_ = storage.Remove(documento.Arquivo)
		}
		flash.Add(c, "danger", "Erro ao atualizar documento")
		c.Redirect(http.StatusFound, "/colaborador/"+strconv.Itoa(int(documento.ColaboradorID))+"/documentos")
		return
	}

	if antigoArquivo != "" {
		_ = storage.Remove(antigoArquivo)
	}

	audit(c, "editar_documento", "Atualizado documento: "+documento.Nome, "documento", documento.ID)
	flash.Add(c, "success", "Documento atualizado com sucesso!")
	c.Redirect(http.StatusFound, "/colaborador/"+strconv.Itoa(int(documento.ColaboradorID))+"/documentos")
}

// RenovarDocumento recalcula a validade a partir de hoje, mantendo o tipo.
// Para tipo personalizado é preciso informar a nova data.
func RenovarDocumento(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "ID inválido")
		return
	}

	var documento models.Documento
	if err := database.DB.First(&documento, id).Error; err != nil {
		c.String(http.StatusNotFound, "Documento não encontrado")
		return
	}

	destino := "/colaborador/" + strconv.Itoa(int(documento.ColaboradorID)) + "/documentos"

	if documento.TipoValidade == models.TipoIndeterminado {
		flash.Add(c, "info", "Documento de validade indeterminada não precisa de renovação")
		c.Redirect(http.StatusFound, destino)
		return
	}

	var personalizada *time.Time
	if documento.TipoValidade == models.TipoPersonalizado {
		v := strings.TrimSpace(c.PostForm("data_validade"))
		if v == "" {
			flash.Add(c, "warning", "Informe a nova data de validade")
			c.Redirect(http.StatusFound, destino)
			return
		}
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			flash.Add(c, "warning", "Data de validade inválida")
			c.Redirect(http.StatusFound, destino)
			return
		}
		personalizada = &d
	}

	documento.DataValidade = validade.CalcularDataValidade(documento.TipoValidade, personalizada, time.Now())

	if err := database.DB.Save(&documento).Error; err != nil {
		flash.Add(c, "danger", "Erro ao renovar documento")
		c.Redirect(http.StatusFound, destino)
		return
	}

	audit(c, "renovar_documento", "Renovado documento: "+documento.Nome, "documento", documento.ID)
	flash.Add(c, "success", "Documento renovado com sucesso!")
	c.Redirect(http.StatusFound, destino)
}

// DeleteDocumento apaga a linha primeiro; o arquivo sai depois do commit e,
// se sobrar por falha, a varredura de órfãos o recolhe.
func DeleteDocumento(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "ID inválido")
		return
	}

	var documento models.Documento
	if err := database.DB.First(&documento, id).Error; err != nil {
		c.String(http.StatusNotFound, "Documento não encontrado")
		return
	}

	destino := "/colaborador/" + strconv.Itoa(int(documento.ColaboradorID)) + "/documentos"

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&documento).Error
	})
	if err != nil {
		flash.Add(c, "danger", "Erro ao excluir documento")
		c.Redirect(http.StatusFound, destino)
		return
	}

	_ = storage.Remove(documento.Arquivo)

	audit(c, "excluir_documento", "Excluído documento: "+documento.Nome, "documento", documento.ID)
	flash.Add(c, "success", "Documento excluído com sucesso!")
	c.Redirect(http.StatusFound, destino)
}

func DownloadDocumento(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "ID inválido")
		return
	}

	var documento models.Documento
	if err := database.DB.First(&documento, id).Error; err != nil {
		c.String(http.StatusNotFound, "Documento não encontrado")
		return
	}

	if !storage.Exists(documento.Arquivo) {
		flash.Add(c, "danger", "Arquivo não encontrado")
		c.Redirect(http.StatusFound, "/documentos")
		return
	}

	nome := documento.NomeArquivo
	if nome == "" {
		nome = documento.Arquivo
	}
	c.FileAttachment(storage.Path(documento.Arquivo), nome)
}
