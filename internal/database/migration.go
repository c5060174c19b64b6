package database

import (
	"fmt"

	"github.com/damirpristav/dogs-app-backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Animal{},
		&models.Adoption{},
		&models.Notification{},
		&models.NotificationRecipient{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
