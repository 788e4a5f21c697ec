// Package dbtest opens throwaway in-memory databases for service tests.
package dbtest

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/homedeco/marketplace/internal/models"
	"github.com/homedeco/marketplace/pkg/tool"
)

// Open returns a migrated in-memory SQLite handle. Each call gets its own
// named shared-cache database so parallel tests do not interfere.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", tool.GenerateUUIDV7())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Account{},
		&models.Service{},
		&models.DecoratorApplication{},
		&models.Booking{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
