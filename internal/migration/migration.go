package migration

import (
	"errors"
	"fmt"

	catalogdomain "github.com/smallbiznis/kstore/internal/catalog/domain"
	"gorm.io/gorm"
)

// RunMigrations creates the document table on startup so a fresh sqlite
// file or empty database is usable without a separate migrate step.
func RunMigrations(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}
	if err := db.AutoMigrate(&catalogdomain.Document{}); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
