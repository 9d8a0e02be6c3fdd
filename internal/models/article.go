// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStatus represents the publishing state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
)

// Valid reports whether the status is one of the known publishing states.
func (s ArticleStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Article represents a blog article. Content is Markdown source; rendering
// to HTML happens at the response boundary, never in the store.
type Article struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Excerpt       *string       `json:"excerpt,omitempty"`
	Content       string        `json:"content"`
	FeaturedImage *string       `json:"featured_image,omitempty"`
	CategoryID    uuid.UUID     `json:"category_id"`
	AuthorID      uuid.UUID     `json:"author_id"`
	Status        ArticleStatus `json:"status"`
	PublishedAt   *time.Time    `json:"published_at,omitempty"`
	ViewsCount    int           `json:"views_count"`
	ReadingTime   *int          `json:"reading_time,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Virtual fields populated by store methods that join the owning rows.
	Category *Category `json:"category,omitempty"`
	Author   *User     `json:"author,omitempty"`
}

// IsPublished returns true if the article is in published status.
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}
