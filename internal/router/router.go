// Package router sets up all HTTP routes and middleware chains for the
// Inkwell publishing engine. Routes are organized into a public read group
// and an identity-guarded management group.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(public *handlers.Public, manage *handlers.Manage) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	// Public read surface. Articles and categories are addressed by slug.
	r.Get("/", public.Home)
	r.Get("/articles", public.Articles)
	r.Get("/articles/{slug}", public.Article)
	r.Get("/categories", public.Categories)
	r.Get("/categories/{slug}", public.Category)

	// Management surface — requires a resolved author identity. Entities
	// are addressed by identifier here, never by slug.
	r.Route("/manage", func(r chi.Router) {
		r.Use(middleware.RequireIdentity)

		r.Route("/articles", func(r chi.Router) {
			r.Post("/", manage.CreateArticle)
			r.Get("/{id}", manage.GetArticle)
			r.Put("/{id}", manage.UpdateArticle)
			r.Delete("/{id}", manage.DeleteArticle)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", manage.CreateCategory)
			r.Get("/{id}", manage.GetCategory)
			r.Put("/{id}", manage.UpdateCategory)
			r.Delete("/{id}", manage.DeleteCategory)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
