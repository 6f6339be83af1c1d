package database

import (
	"log"

	"github.com/charliecatxph/eventra-backend/internal/config"
	"github.com/charliecatxph/eventra-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(
		&models.Organization{},
		&models.Event{},
		&models.Attendee{},
		&models.Notification{},
		&models.BizMatch{},
		&models.Supplier{},
		&models.TimeslotSheet{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}
