package database

import "rh-documentos/internal/models"

// helper para o registro de auditoria, chamado em cada ponto de mutação
func CreateAuditLog(usuarioID uint, acao, descricao, tabela string, registroID uint, ip, userAgent string) {
	if DB == nil {
		return
	}
	record := models.LogAuditoria{
		UsuarioID:     usuarioID,
		Acao:          acao,
		Descricao:     descricao,
		TabelaAfetada: tabela,
		RegistroID:    registroID,
		IPAddress:     ip,
		UserAgent:     userAgent,
	}
	_ = DB.Create(&record).Error
}
