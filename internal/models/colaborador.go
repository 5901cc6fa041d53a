package models

import (
	"time"

	"gorm.io/gorm"
)

type Colaborador struct {
	gorm.Model
	Nome         string     `gorm:"size:100;not null"`
	Email        string     `gorm:"size:120"`
	Departamento string     `gorm:"size:50"`
	Cargo        string     `gorm:"size:50"`
	DataAdmissao *time.Time `gorm:"type:date"`

	// documentos pertencem a exatamente um colaborador
	Documentos []Documento `gorm:"constraint:OnDelete:CASCADE"`
}
