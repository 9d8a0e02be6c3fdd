// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequireIdentity(t *testing.T) {
	t.Run("rejects request without header", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not be reached")
		})

		handler := RequireIdentity(inner)

		req := httptest.NewRequest(http.MethodPost, "/manage/articles", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rr.Code)
		}
	})

	t.Run("rejects malformed author ID", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not be reached")
		})

		handler := RequireIdentity(inner)

		req := httptest.NewRequest(http.MethodPost, "/manage/articles", nil)
		req.Header.Set("X-Author-ID", "not-a-uuid")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rr.Code)
		}
	})

	t.Run("passes resolved identity through context", func(t *testing.T) {
		want := uuid.New()
		var got uuid.UUID
		var ok bool

		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok = AuthorID(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		handler := RequireIdentity(inner)

		req := httptest.NewRequest(http.MethodPost, "/manage/articles", nil)
		req.Header.Set("X-Author-ID", want.String())
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		if !ok {
			t.Fatal("AuthorID should report presence")
		}
		if got != want {
			t.Errorf("author ID: got %s, want %s", got, want)
		}
	})

	t.Run("AuthorID reports absence on bare context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if _, ok := AuthorID(req.Context()); ok {
			t.Error("expected no identity on bare context")
		}
	})
}
