// Package testutil provides a migrated in-memory database for package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/javajoker/bookreview/internal/config"
	"github.com/javajoker/bookreview/internal/database"
)

// NewDB opens a private in-memory sqlite database with foreign keys
// enforced and the schema migrated. It is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	// One connection keeps the shared-cache memory database alive.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), config.DatabaseConfig{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() { database.Close(db) })
	return db
}
