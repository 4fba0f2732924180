package database

import (
	"fmt"
	"transfer-storefront/internal/common/models"
	"transfer-storefront/internal/pkg/logger"
)

func (db *Database) RunMigrations() error {
	logger.Info.Println("Starting database migrations...")

	// Define models in dependency order
	entities := []any{
		&models.User{},
		&models.Transfer{},
		&models.EmailLead{},
	}

	for _, model := range entities {
		logger.Info.Printf("Migrating model: %T", model)
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	if err := db.createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.Info.Println("Database migrations completed successfully")
	return nil
}

func (db *Database) createIndexes() error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_transfers_sender_created ON transfers(sender_email, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_transfers_amount ON transfers(amount);`,
	}

	// MySQL has no IF NOT EXISTS for indexes; AutoMigrate's tag indexes are enough there.
	if db.Config.Driver != POSTGRES {
		return nil
	}

	for _, query := range indexes {
		if err := db.Exec(query).Error; err != nil {
			logger.Error.Printf("Error creating index: %s, Error: %v", query, err)
			return err
		}
	}

	return nil
}
