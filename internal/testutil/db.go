// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"storefront/backend/internal/config"
	"storefront/backend/internal/database"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database that is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{DatabaseDriver: config.DriverSQLite, DatabaseURL: ":memory:"}
	db, err := database.Connect(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.Migrate(db))
	return db
}
