// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/cache"
	"inkwell/internal/markdown"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

const (
	// homepageArticles and homepageCategories bound the homepage payload.
	homepageArticles   = 6
	homepageCategories = 8
)

// Public groups handlers for the visitor-facing read endpoints. Listing
// payloads are checked against the Valkey payload cache before hitting the
// database; article detail is never cached because each view must count.
type Public struct {
	articles   *store.ArticleStore
	categories *store.CategoryStore
	payloads   *cache.PayloadCache
}

// NewPublic creates a new Public handler group. payloads may be nil when
// the cache server is not configured.
func NewPublic(articles *store.ArticleStore, categories *store.CategoryStore, payloads *cache.PayloadCache) *Public {
	return &Public{
		articles:   articles,
		categories: categories,
		payloads:   payloads,
	}
}

// writeCached writes a previously cached JSON payload verbatim.
func writeCached(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// Home returns the homepage payload: the latest published articles plus the
// category index with article counts.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := p.payloads.Get(ctx, cache.HomeKey()); ok {
		writeCached(w, cached)
		return
	}

	articles, err := p.articles.ListLatestPublished(homepageArticles)
	if err != nil {
		respondError(w, err)
		return
	}

	categories, err := p.categories.ListWithArticleCounts()
	if err != nil {
		respondError(w, err)
		return
	}
	if len(categories) > homepageCategories {
		categories = categories[:homepageCategories]
	}

	payload, err := json.Marshal(map[string]any{
		"articles":   articles,
		"categories": categories,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	p.payloads.Set(ctx, cache.HomeKey(), payload)
	writeCached(w, payload)
}

// listingFilters echoes the accepted filter inputs back to the rendering
// boundary so forms can restore their state.
type listingFilters struct {
	Category string  `json:"category,omitempty"`
	Search   string  `json:"search,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// Articles runs the listing pipeline. Filters compose via AND: category
// slug (exact), search (case-insensitive substring of title or content),
// status, and pagination. When the status parameter is absent the handler
// applies the PublishedOnly preset; a status parameter that is present but
// empty counts as provided and filters on the empty status, matching
// nothing. Drafts therefore never appear unless explicitly requested.
func (p *Public) Articles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	filter := store.ArticleFilter{
		CategorySlug: query.Get("category"),
		Search:       query.Get("search"),
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(query.Get("page_size")); err == nil {
		filter.PageSize = size
	}

	statusProvided := query.Has("status")
	if statusProvided {
		s := models.ArticleStatus(query.Get("status"))
		filter.Status = &s
	} else {
		filter = filter.PublishedOnly()
	}

	// Only the default published view is cacheable; status overrides can
	// surface drafts and must always hit the database.
	cacheKey := cache.ListingKey(query)
	if !statusProvided {
		if cached, ok := p.payloads.Get(ctx, cacheKey); ok {
			writeCached(w, cached)
			return
		}
	}

	page, err := p.articles.List(filter)
	if err != nil {
		respondError(w, err)
		return
	}

	categories, err := p.categories.List()
	if err != nil {
		respondError(w, err)
		return
	}

	filters := listingFilters{
		Category: filter.CategorySlug,
		Search:   filter.Search,
	}
	if statusProvided {
		s := query.Get("status")
		filters.Status = &s
	}

	payload, err := json.Marshal(map[string]any{
		"articles":   page,
		"categories": categories,
		"filters":    filters,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	if !statusProvided {
		p.payloads.Set(ctx, cacheKey, payload)
	}
	writeCached(w, payload)
}

// Article returns one article by slug with its Markdown rendered to HTML,
// and counts the view. The increment is a single atomic UPDATE so
// concurrent viewers never lose counts.
func (p *Public) Article(w http.ResponseWriter, r *http.Request) {
	articleSlug := chi.URLParam(r, "slug")

	article, err := p.articles.FindBySlug(articleSlug)
	if err != nil {
		respondError(w, err)
		return
	}

	views, err := p.articles.IncrementViews(article.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	article.ViewsCount = views

	contentHTML, err := markdown.ToHTML(article.Content)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"article":      article,
		"content_html": contentHTML,
	})
}

// Categories returns all categories with their article counts.
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := p.categories.ListWithArticleCounts()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// Category returns one category and its published articles, newest publish
// first. Unlike the general listing there is no status override here.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	categorySlug := chi.URLParam(r, "slug")

	category, err := p.categories.FindBySlug(categorySlug)
	if err != nil {
		respondError(w, err)
		return
	}

	articles, err := p.articles.ListPublishedByCategory(categorySlug)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"articles": articles,
	})
}
