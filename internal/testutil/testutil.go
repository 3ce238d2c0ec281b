package testutil

import (
	"fmt"
	"testing"

	"github.com/neuronest/neuronest/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestDatabase holds a test database connection (in-memory SQLite).
type TestDatabase struct {
	DB  *gorm.DB
	DSN string
}

// SetupTestDatabase creates an in-memory SQLite database for integration
// tests. The production models are SQLite-compatible as written (UUIDs are
// stored through their Valuer as text), so the real schema is migrated.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	dsn := "file::memory:?cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Thought{}); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return &TestDatabase{
		DB:  db,
		DSN: dsn,
	}
}

// Teardown closes the test database connection.
func (td *TestDatabase) Teardown(t *testing.T) {
	sqlDB, err := td.DB.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close database: %v", err)
	}
}

// CleanDatabase deletes all records from tables (for test isolation).
func CleanDatabase(t *testing.T, db *gorm.DB) {
	// SQLite doesn't support TRUNCATE; thoughts first because of the FK.
	tables := []string{"thoughts", "users"}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("Warning: Failed to clean table %s: %v", table, err)
		}
	}
}
