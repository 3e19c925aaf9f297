// store_test.go provides shared test infrastructure: an in-memory SQLite
// database with all migrations applied.
package store

import (
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"

	"wikibase/internal/database"
)

// testDB opens an in-memory SQLite database and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A single connection keeps every query on the same in-memory DB.
	db.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}
