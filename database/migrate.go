package database

import (
	"fmt"

	"gigcampus_backend/internal/config"
	"gigcampus_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm opens the GORM connection using the configured DSN.
// TranslateError is required: the repositories map gorm.ErrDuplicatedKey
// to domain errors, and without it Postgres unique violations surface
// as raw driver errors.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	// uuid_generate_v4 is used by the BaseModel default.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Bid{},
		&models.Message{},
		&models.Rating{},
		&models.RatingVote{},
		&models.PaymentTransaction{},
	)
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	return nil
}
