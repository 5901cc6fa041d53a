package models

import (
	"time"

	"gorm.io/gorm"
)

type TipoValidade string

const (
	TipoIndeterminado TipoValidade = "indeterminado"
	Tipo3Meses        TipoValidade = "3"
	Tipo6Meses        TipoValidade = "6"
	Tipo12Meses       TipoValidade = "12"
	TipoPersonalizado TipoValidade = "personalizado"
)

type Documento struct {
	gorm.Model
	ColaboradorID uint `gorm:"not null;index"`
	Colaborador   Colaborador

	Nome         string       `gorm:"size:100;not null"`
	TipoValidade TipoValidade `gorm:"type:varchar(20);not null"`
	DataUpload   time.Time    `gorm:"autoCreateTime"`
	DataValidade *time.Time   `gorm:"type:date"`

	// Arquivo é a chave no diretório de uploads (uuid + extensão);
	// NomeArquivo guarda o nome original só para exibição.
	Arquivo     string `gorm:"size:200;not null"`
	NomeArquivo string `gorm:"size:200"`

	Observacoes string `gorm:"type:text"`
}
