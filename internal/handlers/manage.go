// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// Manage groups the authenticated authoring handlers. Every mutation flushes
// the public payload cache so visitors never see stale listings longer than
// a request.
type Manage struct {
	articles   *store.ArticleStore
	categories *store.CategoryStore
	payloads   *cache.PayloadCache
}

// NewManage creates a new Manage handler group. payloads may be nil when
// the cache server is not configured.
func NewManage(articles *store.ArticleStore, categories *store.CategoryStore, payloads *cache.PayloadCache) *Manage {
	return &Manage{
		articles:   articles,
		categories: categories,
		payloads:   payloads,
	}
}

// articleForm is the JSON body accepted for article create and update.
// published_at is honored only on create (backdated imports); on update the
// publish-state rules derive it from the stored status.
type articleForm struct {
	Title         string     `json:"title"`
	Excerpt       *string    `json:"excerpt"`
	Content       string     `json:"content"`
	FeaturedImage *string    `json:"featured_image"`
	CategoryID    uuid.UUID  `json:"category_id"`
	Status        string     `json:"status"`
	PublishedAt   *time.Time `json:"published_at"`
	ReadingTime   *int       `json:"reading_time"`
}

// categoryForm is the JSON body accepted for category create and update.
type categoryForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// decodeBody decodes a JSON request body, rejecting malformed payloads as a
// validation failure.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &store.ValidationError{Field: "body", Message: "request body must be valid JSON"}
	}
	return nil
}

// idParam parses the {id} route parameter. An unparseable ID addresses
// nothing, so it reports ErrNotFound.
func idParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, store.ErrNotFound
	}
	return id, nil
}

// CreateArticle creates an article owned by the authenticated author. The
// author ID comes from the resolved identity and is passed to the store as
// an explicit argument — stores never read ambient request state.
func (m *Manage) CreateArticle(w http.ResponseWriter, r *http.Request) {
	authorID, ok := middleware.AuthorID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var form articleForm
	if err := decodeBody(r, &form); err != nil {
		respondError(w, err)
		return
	}

	article, err := m.articles.Create(&models.Article{
		Title:         form.Title,
		Excerpt:       form.Excerpt,
		Content:       form.Content,
		FeaturedImage: form.FeaturedImage,
		CategoryID:    form.CategoryID,
		AuthorID:      authorID,
		Status:        models.ArticleStatus(form.Status),
		PublishedAt:   form.PublishedAt,
		ReadingTime:   form.ReadingTime,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	m.payloads.InvalidateAll(r.Context())
	respondJSON(w, http.StatusCreated, map[string]any{"article": article})
}

// GetArticle returns one article by ID for editing. Reads through the
// management surface never touch the view counter.
func (m *Manage) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	article, err := m.articles.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"article": article})
}

// UpdateArticle edits an article. Status transitions follow the
// publish-state rules; validation failures abort before any mutation.
func (m *Manage) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	authorID, ok := middleware.AuthorID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var form articleForm
	if err := decodeBody(r, &form); err != nil {
		respondError(w, err)
		return
	}

	article, err := m.articles.Update(id, &models.Article{
		Title:         form.Title,
		Excerpt:       form.Excerpt,
		Content:       form.Content,
		FeaturedImage: form.FeaturedImage,
		CategoryID:    form.CategoryID,
		AuthorID:      authorID,
		Status:        models.ArticleStatus(form.Status),
		ReadingTime:   form.ReadingTime,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	m.payloads.InvalidateAll(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{"article": article})
}

// DeleteArticle removes an article permanently.
func (m *Manage) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := m.articles.Delete(id); err != nil {
		respondError(w, err)
		return
	}

	m.payloads.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// CreateCategory creates a category; the slug derives from the name.
func (m *Manage) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var form categoryForm
	if err := decodeBody(r, &form); err != nil {
		respondError(w, err)
		return
	}

	category, err := m.categories.Create(&models.Category{
		Name:        form.Name,
		Description: form.Description,
		Color:       form.Color,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	m.payloads.InvalidateAll(r.Context())
	respondJSON(w, http.StatusCreated, map[string]any{"category": category})
}

// GetCategory returns one category by ID for editing.
func (m *Manage) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	category, err := m.categories.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"category": category})
}

// UpdateCategory renames or restyles a category. The slug stays fixed.
func (m *Manage) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var form categoryForm
	if err := decodeBody(r, &form); err != nil {
		respondError(w, err)
		return
	}

	category, err := m.categories.Update(&models.Category{
		ID:          id,
		Name:        form.Name,
		Description: form.Description,
		Color:       form.Color,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	m.payloads.InvalidateAll(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{"category": category})
}

// DeleteCategory removes a category and, through the database cascade, all
// of its articles.
func (m *Manage) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := m.categories.Delete(id); err != nil {
		respondError(w, err)
		return
	}

	m.payloads.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
