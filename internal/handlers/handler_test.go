// handler_test.go wires the real stores and router against a test database
// so the HTTP surface is exercised end to end. Tests are skipped if
// PostgreSQL is not available. The payload cache is nil throughout: a
// missing cache server is a supported configuration and keeps these tests
// independent of Valkey.
package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/database"
	"inkwell/internal/handlers"
	"inkwell/internal/models"
	"inkwell/internal/router"
	"inkwell/internal/store"
)

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

// testApp holds everything a handler test needs: a migrated database, the
// fully wired router, and a throwaway author and category.
type testApp struct {
	db       *sql.DB
	handler  http.Handler
	author   *models.User
	category *models.Category
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)
	t.Cleanup(func() { db.Close() })

	articles := store.NewArticleStore(db)
	categories := store.NewCategoryStore(db)

	author, err := store.NewUserStore(db).Create(&models.User{
		Name:  "Handler Tester",
		Email: "handler-" + uuid.NewString()[:8] + "@test.local",
	})
	if err != nil {
		t.Fatalf("create test author: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", author.ID) })

	category, err := categories.Create(&models.Category{
		Name: "Handler Topics " + uuid.NewString()[:8],
	})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", category.ID) })

	public := handlers.NewPublic(articles, categories, nil)
	manage := handlers.NewManage(articles, categories, nil)

	return &testApp{
		db:       db,
		handler:  router.New(public, manage),
		author:   author,
		category: category,
	}
}

// do runs one request through the router and returns the recorder.
func (app *testApp) do(t *testing.T, method, path string, body any, authorID string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorID != "" {
		req.Header.Set("X-Author-ID", authorID)
	}

	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a JSON response body, failing the test on bad JSON.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// createArticle creates an article through the management API and registers
// cleanup. It returns the decoded article payload.
func (app *testApp) createArticle(t *testing.T, form map[string]any) map[string]any {
	t.Helper()

	if _, ok := form["category_id"]; !ok {
		form["category_id"] = app.category.ID.String()
	}
	rec := app.do(t, http.MethodPost, "/manage/articles", form, app.author.ID.String())
	if rec.Code != http.StatusCreated {
		t.Fatalf("create article: status %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Article map[string]any `json:"article"`
	}
	decode(t, rec, &resp)

	slug, _ := resp.Article["slug"].(string)
	t.Cleanup(func() { app.db.Exec("DELETE FROM articles WHERE slug = $1", slug) })
	return resp.Article
}

func uniqueTitle(prefix string) string {
	return prefix + " " + uuid.NewString()[:8]
}
