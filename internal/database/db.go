package database

import (
	"log"
	"strings"
	"time"

	"rh-documentos/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// dialector escolhe o driver pelo DSN: postgres quando o DSN parece um,
// senão sqlite (caminho de arquivo, padrão).
func dialector(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

func Init(dsn, adminUsername, adminPassword string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		DB, err = gorm.Open(dialector(dsn), &gorm.Config{})
		if err == nil {
			break
		}

		log.Printf("failed to connect to DB (attempt %d/%d): %v", i, maxAttempts, err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	// migrações
	err = DB.AutoMigrate(
		&models.Usuario{},
		&models.Colaborador{},
		&models.Documento{},
		&models.LogAuditoria{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	createDefaultAdmin(adminUsername, adminPassword)
}

// cria o administrador padrão quando ainda não existe nenhum;
// credencial fraca de propósito, trocar em produção
func createDefaultAdmin(username, password string) {
	var count int64
	if err := DB.Model(&models.Usuario{}).
		Where("role = ?", models.RoleAdministrador).
		Count(&count).Error; err != nil {
		log.Printf("failed to check admin user: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash default admin password: %v", err)
		return
	}

	admin := models.Usuario{
		Username:     username,
		Email:        "admin@empresa.com",
		PasswordHash: string(hash),
		Role:         models.RoleAdministrador,
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("failed to create default admin: %v", err)
		return
	}

	log.Printf("created default admin user: %s", username)
}
