// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/database"
	"inkwell/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testAuthor creates a throwaway author row and registers cleanup.
func testAuthor(t *testing.T, db *sql.DB) *models.User {
	t.Helper()

	email := "author-" + uuid.NewString()[:8] + "@test.local"
	u, err := NewUserStore(db).Create(&models.User{Name: "Test Author", Email: email})
	if err != nil {
		t.Fatalf("create test author: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })
	return u
}

// testCategory creates a throwaway category and registers cleanup. The
// cascade removes any articles still owned by it.
func testCategory(t *testing.T, db *sql.DB, name string) *models.Category {
	t.Helper()

	c, err := NewCategoryStore(db).Create(&models.Category{Name: name})
	if err != nil {
		t.Fatalf("create test category %q: %v", name, err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", c.ID) })
	return c
}

// cleanArticles registers cleanup that removes test articles by slug.
func cleanArticles(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, s := range slugs {
			db.Exec("DELETE FROM articles WHERE slug = $1", s)
		}
	})
}

// uniqueName appends a random suffix so parallel test runs never collide on
// the unique name/slug constraints.
func uniqueName(prefix string) string {
	return prefix + " " + uuid.NewString()[:8]
}
