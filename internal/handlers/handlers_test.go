package handlers_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"rh-documentos/internal/config"
	"rh-documentos/internal/database"
	"rh-documentos/internal/models"
	"rh-documentos/internal/server"
	"rh-documentos/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	database.Init(dsn, "admin", "admin123")

	if err := storage.Init(t.TempDir()); err != nil {
		t.Fatalf("storage init error: %v", err)
	}

	cfg := &config.Config{
		ServerPort:    "0",
		SessionSecret: "test-secret",
		TemplateGlob:  "../../web/templates/*.html",
		MaxUploadMB:   8,
	}
	return server.NewRouter(cfg, zap.NewNop())
}

func createUser(t *testing.T, username string, role models.UserRole) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	user := models.Usuario{
		Username:     username,
		Email:        username + "@empresa.com",
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user error: %v", err)
	}
}

func createColaborador(t *testing.T, nome string) models.Colaborador {
	t.Helper()
	colaborador := models.Colaborador{Nome: nome, Departamento: "RH"}
	if err := database.DB.Create(&colaborador).Error; err != nil {
		t.Fatalf("create colaborador error: %v", err)
	}
	return colaborador
}

func createDocumento(t *testing.T, colaboradorID uint, nome string) models.Documento {
	t.Helper()
	key, err := storage.Save(strings.NewReader("conteudo de "+nome), nome+".pdf")
	if err != nil {
		t.Fatalf("save file error: %v", err)
	}
	doc := models.Documento{
		ColaboradorID: colaboradorID,
		Nome:          nome,
		TipoValidade:  models.TipoIndeterminado,
		Arquivo:       key,
		NomeArquivo:   nome + ".pdf",
	}
	if err := database.DB.Create(&doc).Error; err != nil {
		t.Fatalf("create documento error: %v", err)
	}
	return doc
}

func do(r *gin.Engine, method, path string, body io.Reader, contentType string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	w := do(r, http.MethodPost, "/login", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("login de %s: expected 302, got %d", username, w.Code)
	}
	resp := http.Response{Header: w.Header()}
	return resp.Cookies()
}

func multipartForm(t *testing.T, fields map[string]string, fileName string, fileContent []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field error: %v", err)
		}
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("arquivo", fileName)
		if err != nil {
			t.Fatalf("create form file error: %v", err)
		}
		if _, err := fw.Write(fileContent); err != nil {
			t.Fatalf("write file error: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart error: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestLoginAdminPermiteGestaoDeUsuarios(t *testing.T) {
	r := setupServer(t)

	// sem sessão a área autenticada redireciona para o login
	if w := do(r, http.MethodGet, "/usuarios", nil, "", nil); w.Code != http.StatusFound {
		t.Fatalf("expected redirect without session, got %d", w.Code)
	}

	cookies := login(t, r, "admin", "admin123")
	if w := do(r, http.MethodGet, "/usuarios", nil, "", cookies); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin on /usuarios, got %d", w.Code)
	}
}

func TestLoginSenhaErradaNaoCriaSessao(t *testing.T) {
	r := setupServer(t)

	form := url.Values{"username": {"admin"}, "password": {"errada"}}
	w := do(r, http.MethodPost, "/login", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong password, got %d", w.Code)
	}

	cookies := (&http.Response{Header: w.Header()}).Cookies()
	if w := do(r, http.MethodGet, "/", nil, "", cookies); w.Code != http.StatusFound {
		t.Fatalf("expected redirect to login after failed login, got %d", w.Code)
	}
}

func TestVisitanteNaoAdicionaDocumento(t *testing.T) {
	r := setupServer(t)
	createUser(t, "visita", models.RoleVisitante)
	colaborador := createColaborador(t, "Ana")

	cookies := login(t, r, "visita", "senha123")

	body, contentType := multipartForm(t, map[string]string{
		"nome":          "Contrato",
		"tipo_validade": "12",
	}, "contrato.pdf", []byte("%PDF-1.4"))

	w := do(r, http.MethodPost, "/documento/novo/"+strconv.Itoa(int(colaborador.ID)), body, contentType, cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect for denied visitante, got %d", w.Code)
	}

	var count int64
	database.DB.Model(&models.Documento{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no documento row, got %d", count)
	}
}

func TestOperadorAdicionaDocumentoComPrazo(t *testing.T) {
	r := setupServer(t)
	createUser(t, "operador1", models.RoleOperador)
	colaborador := createColaborador(t, "Ana")

	cookies := login(t, r, "operador1", "senha123")

	body, contentType := multipartForm(t, map[string]string{
		"nome":          "Contrato",
		"tipo_validade": "12",
	}, "contrato.pdf", []byte("%PDF-1.4"))

	w := do(r, http.MethodPost, "/documento/novo/"+strconv.Itoa(int(colaborador.ID)), body, contentType, cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after create, got %d", w.Code)
	}

	var doc models.Documento
	if err := database.DB.Where("colaborador_id = ?", colaborador.ID).First(&doc).Error; err != nil {
		t.Fatalf("expected documento row: %v", err)
	}
	if doc.DataValidade == nil {
		t.Fatalf("expected data de validade for tipo 12")
	}
	expected := time.Now().AddDate(0, 0, 365).Format("2006-01-02")
	if got := doc.DataValidade.Format("2006-01-02"); got != expected {
		t.Fatalf("expected validade %s, got %s", expected, got)
	}
	if doc.NomeArquivo != "contrato.pdf" {
		t.Fatalf("expected original name kept as metadata, got %s", doc.NomeArquivo)
	}
	if doc.Arquivo == "contrato.pdf" {
		t.Fatalf("expected generated storage key, got original name")
	}
	if !storage.Exists(doc.Arquivo) {
		t.Fatalf("expected stored file to exist")
	}
}

func TestExcluirColaboradorRemoveDocumentosEArquivos(t *testing.T) {
	r := setupServer(t)
	createUser(t, "gestor1", models.RoleGestor)
	colaborador := createColaborador(t, "Bruno")
	doc1 := createDocumento(t, colaborador.ID, "Contrato")
	doc2 := createDocumento(t, colaborador.ID, "ASO")

	cookies := login(t, r, "gestor1", "senha123")

	w := do(r, http.MethodPost, "/colaborador/excluir/"+strconv.Itoa(int(colaborador.ID)), nil, "", cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after delete, got %d", w.Code)
	}

	var count int64
	database.DB.Model(&models.Documento{}).Where("colaborador_id = ?", colaborador.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected cascade delete, %d documento rows remain", count)
	}
	if storage.Exists(doc1.Arquivo) || storage.Exists(doc2.Arquivo) {
		t.Fatalf("expected stored files to be removed")
	}
}

func TestEditarDocumentoSemArquivoMantemOAtual(t *testing.T) {
	r := setupServer(t)
	createUser(t, "gestor2", models.RoleGestor)
	colaborador := createColaborador(t, "Carla")
	doc := createDocumento(t, colaborador.ID, "Contrato")

	cookies := login(t, r, "gestor2", "senha123")

	body, contentType := multipartForm(t, map[string]string{
		"nome":          "Contrato Atualizado",
		"tipo_validade": "6",
		"observacoes":   "renegociado",
	}, "", nil)

	w := do(r, http.MethodPost, "/documento/editar/"+strconv.Itoa(int(doc.ID)), body, contentType, cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after edit, got %d", w.Code)
	}

	var updated models.Documento
	if err := database.DB.First(&updated, doc.ID).Error; err != nil {
		t.Fatalf("load documento error: %v", err)
	}
	if updated.Arquivo != doc.Arquivo {
		t.Fatalf("expected stored file reference unchanged, got %s", updated.Arquivo)
	}
	if updated.Nome != "Contrato Atualizado" {
		t.Fatalf("expected nome updated, got %s", updated.Nome)
	}
	if updated.DataValidade == nil {
		t.Fatalf("expected validade recomputed for tipo 6")
	}
	if !storage.Exists(updated.Arquivo) {
		t.Fatalf("expected stored file to still exist")
	}
}

func TestEditarDocumentoFormMostraPoliticaAtual(t *testing.T) {
	r := setupServer(t)
	createUser(t, "gestor3", models.RoleGestor)
	colaborador := createColaborador(t, "Helena")
	doc := createDocumento(t, colaborador.ID, "Certificado")

	vencimento := time.Date(2030, time.May, 10, 0, 0, 0, 0, time.UTC)
	doc.TipoValidade = models.TipoPersonalizado
	doc.DataValidade = &vencimento
	if err := database.DB.Save(&doc).Error; err != nil {
		t.Fatalf("save documento error: %v", err)
	}

	cookies := login(t, r, "gestor3", "senha123")

	w := do(r, http.MethodGet, "/documento/editar/"+strconv.Itoa(int(doc.ID)), nil, "", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	page := w.Body.String()
	if !strings.Contains(page, `value="personalizado" selected`) {
		t.Fatalf("expected tipo atual pré-selecionado no formulário")
	}
	if !strings.Contains(page, `value="2030-05-10"`) {
		t.Fatalf("expected data de validade atual preenchida no formulário")
	}
}

func TestRenovarDocumentoPersonalizado(t *testing.T) {
	r := setupServer(t)
	createUser(t, "operador2", models.RoleOperador)
	colaborador := createColaborador(t, "Igor")
	doc := createDocumento(t, colaborador.ID, "ASO")

	antiga := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	doc.TipoValidade = models.TipoPersonalizado
	doc.DataValidade = &antiga
	if err := database.DB.Save(&doc).Error; err != nil {
		t.Fatalf("save documento error: %v", err)
	}

	cookies := login(t, r, "operador2", "senha123")

	// a listagem oferece o campo da nova data junto ao botão de renovar
	w := do(r, http.MethodGet, "/colaborador/"+strconv.Itoa(int(colaborador.ID))+"/documentos", nil, "", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `name="data_validade"`) {
		t.Fatalf("expected campo de nova data no formulário de renovação")
	}

	form := url.Values{"data_validade": {"2030-05-10"}}
	w = do(r, http.MethodPost, "/documento/renovar/"+strconv.Itoa(int(doc.ID)), strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after renovar, got %d", w.Code)
	}

	var renovado models.Documento
	if err := database.DB.First(&renovado, doc.ID).Error; err != nil {
		t.Fatalf("load documento error: %v", err)
	}
	if renovado.DataValidade == nil || renovado.DataValidade.Format("2006-01-02") != "2030-05-10" {
		t.Fatalf("expected validade 2030-05-10, got %v", renovado.DataValidade)
	}
}

func TestDownloadArquivoAusente(t *testing.T) {
	r := setupServer(t)
	colaborador := createColaborador(t, "Davi")
	doc := createDocumento(t, colaborador.ID, "RG")
	if err := os.Remove(storage.Path(doc.Arquivo)); err != nil {
		t.Fatalf("remove file error: %v", err)
	}

	cookies := login(t, r, "admin", "admin123")

	w := do(r, http.MethodGet, "/download/"+strconv.Itoa(int(doc.ID)), nil, "", cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect for missing file, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/documentos" {
		t.Fatalf("expected redirect to /documentos, got %s", loc)
	}
}

func TestMutacoesGeramAuditoria(t *testing.T) {
	r := setupServer(t)
	cookies := login(t, r, "admin", "admin123")

	form := url.Values{"nome": {"Eduarda"}, "departamento": {"TI"}}
	w := do(r, http.MethodPost, "/colaborador/novo", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after create, got %d", w.Code)
	}

	var entry models.LogAuditoria
	if err := database.DB.Where("acao = ?", "criar_colaborador").First(&entry).Error; err != nil {
		t.Fatalf("expected audit entry: %v", err)
	}
	if entry.TabelaAfetada != "colaborador" || entry.UsuarioID == 0 {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
}

func TestBuscaDocumentosPorNome(t *testing.T) {
	r := setupServer(t)
	colaborador := createColaborador(t, "Fernanda")
	createDocumento(t, colaborador.ID, "Contrato")
	createDocumento(t, colaborador.ID, "Diploma")

	cookies := login(t, r, "admin", "admin123")

	w := do(r, http.MethodGet, "/colaborador/"+strconv.Itoa(int(colaborador.ID))+"/documentos?search=conTRA", nil, "", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	page := w.Body.String()
	if !strings.Contains(page, "Contrato") {
		t.Fatalf("expected Contrato in search result")
	}
	if strings.Contains(page, "Diploma") {
		t.Fatalf("did not expect Diploma in search result")
	}
}
