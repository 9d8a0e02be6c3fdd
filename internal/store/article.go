// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"inkwell/internal/markdown"
	"inkwell/internal/models"
	"inkwell/internal/publish"
)

// ArticleStore handles all article-related database operations.
type ArticleStore struct {
	db     *sql.DB
	policy publish.Policy
}

// NewArticleStore creates an ArticleStore with the default publish policy
// (unpublishing retains the first-publish timestamp).
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db, policy: publish.DefaultPolicy}
}

// NewArticleStoreWithPolicy creates an ArticleStore with an explicit
// publish-state policy.
func NewArticleStoreWithPolicy(db *sql.DB, p publish.Policy) *ArticleStore {
	return &ArticleStore{db: db, policy: p}
}

// Validation limits for article fields, matching column widths.
const (
	maxArticleTitleLen   = 255
	maxArticleExcerptLen = 500
	maxFeaturedImageLen  = 255
)

const articleColumns = `a.id, a.title, a.slug, a.excerpt, a.content, a.featured_image,
	a.category_id, a.author_id, a.status, a.published_at, a.views_count,
	a.reading_time, a.created_at, a.updated_at`

// articleJoinColumns extends articleColumns with the owning category and
// author rows so list and detail reads resolve both eagerly.
const articleJoinColumns = articleColumns + `,
	c.id, c.name, c.slug, c.description, c.color, c.created_at, c.updated_at,
	u.id, u.name, u.email, u.created_at, u.updated_at`

const articleJoins = ` FROM articles a
	JOIN categories c ON c.id = a.category_id
	JOIN users u ON u.id = a.author_id`

// scanArticle scans the base article columns.
func scanArticle(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	var a models.Article
	err := scanner.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Content, &a.FeaturedImage,
		&a.CategoryID, &a.AuthorID, &a.Status, &a.PublishedAt, &a.ViewsCount,
		&a.ReadingTime, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// scanArticleJoined scans an article row with its category and author
// populated as virtual fields.
func scanArticleJoined(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	var a models.Article
	var c models.Category
	var u models.User
	err := scanner.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Content, &a.FeaturedImage,
		&a.CategoryID, &a.AuthorID, &a.Status, &a.PublishedAt, &a.ViewsCount,
		&a.ReadingTime, &a.CreatedAt, &a.UpdatedAt,
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt,
		&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Category = &c
	a.Author = &u
	return &a, nil
}

// validateArticle checks article input before any SQL runs so a failed
// write never leaves partial state behind.
func validateArticle(a *models.Article) error {
	if strings.TrimSpace(a.Title) == "" {
		return &ValidationError{Field: "title", Message: "article title is required"}
	}
	if utf8.RuneCountInString(a.Title) > maxArticleTitleLen {
		return &ValidationError{Field: "title", Message: "title is too long (max 255 characters)"}
	}
	if strings.TrimSpace(a.Content) == "" {
		return &ValidationError{Field: "content", Message: "article content is required"}
	}
	if a.Excerpt != nil && utf8.RuneCountInString(*a.Excerpt) > maxArticleExcerptLen {
		return &ValidationError{Field: "excerpt", Message: "excerpt is too long (max 500 characters)"}
	}
	if a.FeaturedImage != nil {
		if utf8.RuneCountInString(*a.FeaturedImage) > maxFeaturedImageLen {
			return &ValidationError{Field: "featured_image", Message: "featured image URL is too long (max 255 characters)"}
		}
		if u, err := url.Parse(*a.FeaturedImage); err != nil || u.Scheme == "" || u.Host == "" {
			return &ValidationError{Field: "featured_image", Message: "featured image must be a valid URL"}
		}
	}
	if a.CategoryID == uuid.Nil {
		return &ValidationError{Field: "category_id", Message: "please select a category"}
	}
	if a.AuthorID == uuid.Nil {
		return &ValidationError{Field: "author_id", Message: "author is required"}
	}
	if !a.Status.Valid() {
		return &ValidationError{Field: "status", Message: "status must be either draft or published"}
	}
	return nil
}

// Create inserts a new article and returns it with generated fields. The
// slug is derived from the title at creation time (uniqueness enforced by
// the database), published_at follows the publish-state rules, and a missing
// reading_time is estimated from the content.
func (s *ArticleStore) Create(a *models.Article) (*models.Article, error) {
	if err := validateArticle(a); err != nil {
		return nil, err
	}

	a.Slug = slug.Make(a.Title)
	a.PublishedAt = publish.AtCreate(a.Status, a.PublishedAt, time.Now())
	if a.ReadingTime == nil {
		rt := markdown.ReadingTime(a.Content)
		a.ReadingTime = &rt
	}

	row := s.db.QueryRow(`
		INSERT INTO articles (title, slug, excerpt, content, featured_image,
		                      category_id, author_id, status, published_at, reading_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, title, slug, excerpt, content, featured_image,
		          category_id, author_id, status, published_at, views_count,
		          reading_time, created_at, updated_at
	`, a.Title, a.Slug, a.Excerpt, a.Content, a.FeaturedImage,
		a.CategoryID, a.AuthorID, a.Status, a.PublishedAt, a.ReadingTime,
	)
	result, err := scanArticle(row)
	if err != nil {
		if terr := translateConstraint(err); terr != nil {
			return nil, terr
		}
		return nil, fmt.Errorf("create article: %w", err)
	}
	return result, nil
}

// Update modifies an existing article. The publish-state transition is
// computed from the stored status, so callers cannot forge published_at on
// update: draft→published stamps the update instant, published→draft keeps
// the historical timestamp under the default policy. The slug keeps its
// creation-time value. Concurrent edits are last-writer-wins.
func (s *ArticleStore) Update(id uuid.UUID, a *models.Article) (*models.Article, error) {
	if err := validateArticle(a); err != nil {
		return nil, err
	}

	var prevStatus models.ArticleStatus
	var prevPublishedAt *time.Time
	err := s.db.QueryRow(`SELECT status, published_at FROM articles WHERE id = $1`, id).
		Scan(&prevStatus, &prevPublishedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load article for update: %w", err)
	}

	publishedAt := publish.AtUpdate(prevStatus, a.Status, prevPublishedAt, time.Now(), s.policy)
	if a.ReadingTime == nil {
		rt := markdown.ReadingTime(a.Content)
		a.ReadingTime = &rt
	}

	row := s.db.QueryRow(`
		UPDATE articles SET
			title = $1, excerpt = $2, content = $3, featured_image = $4,
			category_id = $5, status = $6, published_at = $7,
			reading_time = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING id, title, slug, excerpt, content, featured_image,
		          category_id, author_id, status, published_at, views_count,
		          reading_time, created_at, updated_at
	`, a.Title, a.Excerpt, a.Content, a.FeaturedImage,
		a.CategoryID, a.Status, publishedAt, a.ReadingTime, id,
	)
	result, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		if terr := translateConstraint(err); terr != nil {
			return nil, terr
		}
		return nil, fmt.Errorf("update article: %w", err)
	}
	return result, nil
}

// Delete removes an article by ID. Hard delete, no tombstone.
func (s *ArticleStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID retrieves an article by ID with category and author resolved.
func (s *ArticleStore) FindByID(id uuid.UUID) (*models.Article, error) {
	row := s.db.QueryRow(`SELECT `+articleJoinColumns+articleJoins+` WHERE a.id = $1`, id)
	a, err := scanArticleJoined(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// FindBySlug retrieves an article by its URL slug with category and author
// resolved. Status is not restricted here; visibility policy belongs to the
// listing pipeline.
func (s *ArticleStore) FindBySlug(articleSlug string) (*models.Article, error) {
	row := s.db.QueryRow(`SELECT `+articleJoinColumns+articleJoins+` WHERE a.slug = $1`, articleSlug)
	a, err := scanArticleJoined(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find article by slug: %w", err)
	}
	return a, nil
}

// IncrementViews bumps the view counter by one and returns the new value.
// The increment happens in a single UPDATE so concurrent viewers never lose
// updates to a read-modify-write race.
func (s *ArticleStore) IncrementViews(id uuid.UUID) (int, error) {
	var views int
	err := s.db.QueryRow(`
		UPDATE articles SET views_count = views_count + 1
		WHERE id = $1
		RETURNING views_count
	`, id).Scan(&views)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment views: %w", err)
	}
	return views, nil
}
