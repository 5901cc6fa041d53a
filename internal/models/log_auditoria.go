package models

import "time"

type LogAuditoria struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UsuarioID uint
	Usuario   Usuario

	Acao          string `gorm:"size:100;not null"` // "criar_usuario", "excluir_documento" etc.
	Descricao     string `gorm:"type:text;not null"`
	TabelaAfetada string `gorm:"size:50"` // "usuario", "colaborador", "documento"
	RegistroID    uint
	IPAddress     string `gorm:"size:45"`
	UserAgent     string `gorm:"type:text"`
}
