package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/keaton678/research-hub/internal/infrastructure/repositories"
)

// Migrate creates or updates the schema for every table the service owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&repositories.DBUser{},
		&repositories.DBSession{},
		&repositories.DBPreferences{},
		&repositories.DBContentItem{},
		&repositories.DBFeedback{},
		&repositories.DBPageView{},
		&repositories.DBResourceInteraction{},
		&repositories.DBSearchQuery{},
		&repositories.DBDailyAnalytics{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
