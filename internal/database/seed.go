package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/gosimple/slug"
)

// Seed populates the database with initial development data: a default
// author and a starter set of categories. It is a no-op when users already
// exist, so it is safe to run on every startup.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	var authorID string
	err := db.QueryRow(`
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id
	`, "Editor", "editor@inkwell.local").Scan(&authorID)
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	categories := []struct {
		name        string
		description string
		color       string
	}{
		{"Web Development", "Modern web development techniques and frameworks", "#3B82F6"},
		{"Mobile Development", "iOS and Android app development", "#10B981"},
		{"DevOps", "Deployment, CI/CD, and infrastructure management", "#F59E0B"},
		{"Machine Learning", "AI and machine learning algorithms and applications", "#8B5CF6"},
		{"Cloud Computing", "AWS, Azure, GCP and cloud-native development", "#06B6D4"},
		{"Backend Development", "Server-side development and APIs", "#EF4444"},
		{"Frontend Development", "UI development with modern frameworks", "#EC4899"},
		{"Database Management", "SQL, NoSQL, and database optimization", "#84CC16"},
	}

	var firstCategoryID string
	for i, c := range categories {
		var id string
		err := db.QueryRow(`
			INSERT INTO categories (name, slug, description, color)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, c.name, slug.Make(c.name), c.description, c.color).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.name, err)
		}
		if i == 0 {
			firstCategoryID = id
		}
	}

	// One published article and one draft so the public listing and the
	// draft-visibility rules have something to show immediately.
	_, err = db.Exec(`
		INSERT INTO articles (title, slug, excerpt, content, category_id, author_id,
		                      status, published_at, reading_time)
		VALUES
			($1, $2, $3, $4, $5, $6, 'published', NOW(), 1),
			($7, $8, NULL, $9, $5, $6, 'draft', NULL, 1)
	`,
		"Welcome to Inkwell", "welcome-to-inkwell",
		"A quick tour of the publishing engine.",
		"# Welcome\n\nThis is your first published article. Edit or delete it from the management API.",
		firstCategoryID, authorID,
		"Drafting Your Next Post", "drafting-your-next-post",
		"# Draft\n\nThis draft is invisible in public listings until published.",
	)
	if err != nil {
		return fmt.Errorf("seed insert articles: %w", err)
	}

	slog.Info("database seeded with default author and starter categories",
		"author", "editor@inkwell.local",
		"categories", len(categories),
	)

	return nil
}
