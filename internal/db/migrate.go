package db

import (
	"fmt"

	"github.com/hostwire/hostpanel/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all panel tables.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	return conn.AutoMigrate(
		&models.Admin{},
		&models.Server{},
		&models.Package{},
		&models.Registrar{},
		&models.Tld{},
		&models.User{},
		&models.Ticket{},
		&models.Message{},
		&models.Tax{},
		&models.Setting{},
	)
}
