package database

import (
	"fmt"

	"github.com/fidomax07/vetting-api/internal/models"
	"gorm.io/gorm"
)

// Models lists every table managed by Migrate.
func Models() []any {
	return []any{
		&models.User{},
		&models.UserToken{},
		&models.UserLike{},
	}
}

// Migrate creates or updates the schema, including the unique
// (user_id, user_liked_id) index on userlikes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
