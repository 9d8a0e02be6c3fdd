// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// listing.go implements the article listing pipeline: composable filter
// predicates (category, search, status) assembled into SQL with squirrel,
// with offset pagination and a deterministic sort order.
package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"inkwell/internal/models"
)

// psql builds queries with $n placeholders for Postgres.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	// DefaultPageSize is the number of articles per listing page.
	DefaultPageSize = 12
	maxPageSize     = 100
)

// ArticleFilter describes the composable listing predicates. All fields are
// optional and AND together. Status is a pointer so "no status given" and
// "status given but empty" stay distinct: nil means no status predicate at
// all, while a non-nil empty value filters on status = '' and matches
// nothing. Callers wanting the safe public default apply PublishedOnly
// explicitly rather than relying on hidden store behavior.
type ArticleFilter struct {
	CategorySlug string
	Search       string
	Status       *models.ArticleStatus
	Page         int
	PageSize     int
}

// PublishedOnly returns a copy of the filter pinned to published articles.
// This is the named preset the public listing applies when the caller did
// not supply a status, so drafts never leak into the default listing.
func (f ArticleFilter) PublishedOnly() ArticleFilter {
	s := models.StatusPublished
	f.Status = &s
	return f
}

// ArticlePage is one page of listing results with pagination metadata.
type ArticlePage struct {
	Items       []models.Article `json:"items"`
	TotalCount  int              `json:"total_count"`
	CurrentPage int              `json:"current_page"`
	PageCount   int              `json:"page_count"`
}

// escapeLike neutralizes LIKE metacharacters in user search input so a
// search for "100%" matches the literal text.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// where applies the filter's predicates to a select builder. Search matches
// a case-insensitive substring of the title OR the content; that OR is then
// ANDed with the other predicates.
func (f ArticleFilter) where(b sq.SelectBuilder) sq.SelectBuilder {
	if f.CategorySlug != "" {
		b = b.Where(sq.Eq{"c.slug": f.CategorySlug})
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		b = b.Where(sq.Or{
			sq.ILike{"a.title": pattern},
			sq.ILike{"a.content": pattern},
		})
	}
	if f.Status != nil {
		b = b.Where(sq.Eq{"a.status": string(*f.Status)})
	}
	return b
}

// normalize clamps pagination inputs to sane values.
func (f ArticleFilter) normalize() ArticleFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}
	return f
}

// List runs the filter and returns one page of articles with category and
// author resolved. Sort order is creation time descending — not publish
// time — with the identifier as a deterministic tie-break. An empty result
// is a valid page, not an error.
func (s *ArticleStore) List(f ArticleFilter) (*ArticlePage, error) {
	f = f.normalize()

	countSQL, countArgs, err := f.where(
		psql.Select("COUNT(*)").
			From("articles a").
			Join("categories c ON c.id = a.category_id"),
	).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := s.db.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	querySQL, queryArgs, err := f.where(
		psql.Select(articleJoinColumns).
			From("articles a").
			Join("categories c ON c.id = a.category_id").
			Join("users u ON u.id = a.author_id"),
	).
		OrderBy("a.created_at DESC", "a.id DESC").
		Limit(uint64(f.PageSize)).
		Offset(uint64((f.Page - 1) * f.PageSize)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build listing query: %w", err)
	}

	rows, err := s.db.Query(querySQL, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	items := []models.Article{}
	for rows.Next() {
		a, err := scanArticleJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pageCount := (total + f.PageSize - 1) / f.PageSize
	if pageCount < 1 {
		pageCount = 1
	}

	return &ArticlePage{
		Items:       items,
		TotalCount:  total,
		CurrentPage: f.Page,
		PageCount:   pageCount,
	}, nil
}

// ListPublishedByCategory returns the published articles of one category,
// newest publish first. Unlike the general listing there is no status
// override and the sort key is published_at — once status is fixed to
// published, publish time is the meaningful recency signal.
func (s *ArticleStore) ListPublishedByCategory(categorySlug string) ([]models.Article, error) {
	rows, err := s.db.Query(`
		SELECT `+articleJoinColumns+articleJoins+`
		WHERE c.slug = $1 AND a.status = 'published'
		ORDER BY a.published_at DESC NULLS LAST, a.id DESC
	`, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("list articles by category: %w", err)
	}
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		a, err := scanArticleJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// ListLatestPublished returns the most recently published articles, up to
// limit. Used for the homepage.
func (s *ArticleStore) ListLatestPublished(limit int) ([]models.Article, error) {
	rows, err := s.db.Query(`
		SELECT `+articleJoinColumns+articleJoins+`
		WHERE a.status = 'published'
		ORDER BY a.published_at DESC NULLS LAST, a.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list latest published: %w", err)
	}
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		a, err := scanArticleJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}
