package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/health", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHomePayload(t *testing.T) {
	app := newTestApp(t)

	app.createArticle(t, map[string]any{
		"title":   uniqueTitle("Front Page News"),
		"content": "content for the homepage",
		"status":  "published",
	})

	rec := app.do(t, http.MethodGet, "/", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp struct {
		Articles   []map[string]any `json:"articles"`
		Categories []map[string]any `json:"categories"`
	}
	decode(t, rec, &resp)

	if len(resp.Articles) < 1 {
		t.Error("expected at least one article on the homepage")
	}
	if len(resp.Articles) > 6 {
		t.Errorf("homepage articles: got %d, want at most 6", len(resp.Articles))
	}
	if len(resp.Categories) > 8 {
		t.Errorf("homepage categories: got %d, want at most 8", len(resp.Categories))
	}
	for _, a := range resp.Articles {
		if a["status"] != "published" {
			t.Errorf("draft %v on the homepage", a["slug"])
		}
	}
}

func TestArticlesListingDefaultsToPublished(t *testing.T) {
	app := newTestApp(t)

	app.createArticle(t, map[string]any{
		"title":   uniqueTitle("Visible Post"),
		"content": "published content",
		"status":  "published",
	})
	draft := app.createArticle(t, map[string]any{
		"title":   uniqueTitle("Hidden Draft"),
		"content": "draft content",
		"status":  "draft",
	})

	path := "/articles?category=" + url.QueryEscape(app.category.Slug)
	rec := app.do(t, http.MethodGet, path, nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp struct {
		Articles struct {
			Items      []map[string]any `json:"items"`
			TotalCount int              `json:"total_count"`
		} `json:"articles"`
		Filters map[string]any `json:"filters"`
	}
	decode(t, rec, &resp)

	if resp.Articles.TotalCount != 1 {
		t.Errorf("total: got %d, want 1", resp.Articles.TotalCount)
	}
	for _, a := range resp.Articles.Items {
		if a["slug"] == draft["slug"] {
			t.Error("draft leaked into the default listing")
		}
	}
	if _, present := resp.Filters["status"]; present {
		t.Error("filters should not echo a status that was never provided")
	}

	// An explicit status surfaces the drafts.
	rec = app.do(t, http.MethodGet, path+"&status=draft", nil, "")
	decode(t, rec, &resp)
	if resp.Articles.TotalCount != 1 {
		t.Errorf("draft listing total: got %d, want 1", resp.Articles.TotalCount)
	}
	if resp.Filters["status"] != "draft" {
		t.Errorf("filters.status: got %v, want draft", resp.Filters["status"])
	}

	// Present-but-empty status filters on the empty value and matches
	// nothing; it must not fall back to the published default.
	rec = app.do(t, http.MethodGet, path+"&status=", nil, "")
	decode(t, rec, &resp)
	if resp.Articles.TotalCount != 0 {
		t.Errorf("empty status total: got %d, want 0", resp.Articles.TotalCount)
	}
}

func TestArticleDetailCountsViews(t *testing.T) {
	app := newTestApp(t)

	created := app.createArticle(t, map[string]any{
		"title":   uniqueTitle("Read Me Twice"),
		"content": "# Heading\n\nSome **bold** body.",
		"status":  "published",
	})
	slug := created["slug"].(string)

	var resp struct {
		Article     map[string]any `json:"article"`
		ContentHTML string         `json:"content_html"`
	}

	rec := app.do(t, http.MethodGet, "/articles/"+slug, nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	decode(t, rec, &resp)
	if resp.Article["views_count"].(float64) != 1 {
		t.Errorf("first view count: got %v, want 1", resp.Article["views_count"])
	}
	if !strings.Contains(resp.ContentHTML, "<h1") {
		t.Errorf("content_html should render Markdown, got %q", resp.ContentHTML)
	}

	rec = app.do(t, http.MethodGet, "/articles/"+slug, nil, "")
	decode(t, rec, &resp)
	if resp.Article["views_count"].(float64) != 2 {
		t.Errorf("second view count: got %v, want 2", resp.Article["views_count"])
	}
}

func TestArticleDetailNotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/articles/no-such-slug", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestCategoryDetailListsPublished(t *testing.T) {
	app := newTestApp(t)

	app.createArticle(t, map[string]any{
		"title":   uniqueTitle("In Category"),
		"content": "published content",
		"status":  "published",
	})
	app.createArticle(t, map[string]any{
		"title":   uniqueTitle("Still Drafting"),
		"content": "draft content",
		"status":  "draft",
	})

	rec := app.do(t, http.MethodGet, "/categories/"+app.category.Slug, nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp struct {
		Category map[string]any   `json:"category"`
		Articles []map[string]any `json:"articles"`
	}
	decode(t, rec, &resp)

	if resp.Category["slug"] != app.category.Slug {
		t.Errorf("category slug: got %v, want %s", resp.Category["slug"], app.category.Slug)
	}
	if len(resp.Articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(resp.Articles))
	}
	if resp.Articles[0]["status"] != "published" {
		t.Errorf("status: got %v, want published", resp.Articles[0]["status"])
	}
}

func TestCategoryDetailNotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/categories/no-such-category", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}
