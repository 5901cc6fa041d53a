package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleVisitante     UserRole = "visitante"
	RoleOperador      UserRole = "operador"
	RoleGestor        UserRole = "gestor"
	RoleAdministrador UserRole = "administrador"
)

type Usuario struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:80;not null"`
	Email        string   `gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string   `gorm:"size:120;not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:visitante"`
}
