package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dj-idk/gym-backend/domain"
)

// Open creates a new database connection with production-ready settings.
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate creates or updates every table the platform persists.
func AutoMigrate(db *gorm.DB) error {
	models := []any{
		&domain.User{},
		&domain.Role{},
		&domain.Permission{},
		&domain.Profile{},
		&domain.ProfilePhoto{},
		&domain.Coach{},
		&domain.CoachRelation{},
		&domain.Program{},
		&domain.ServiceCategory{},
		&domain.Service{},
		&domain.Purchase{},
		&domain.Ticket{},
		&domain.TicketResponse{},
		&domain.Message{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}
