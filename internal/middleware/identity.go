// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// authorIDHeader carries the already-authenticated principal. Inkwell never
// authenticates: the identity provider in front of it (gateway or auth
// proxy) resolves credentials and forwards the author's ID here.
const authorIDHeader = "X-Author-ID"

type contextKey string

const authorIDKey contextKey = "author_id"

// RequireIdentity rejects requests without a resolved author identity and
// stores the parsed ID in the request context for handlers to pass along
// explicitly.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(authorIDHeader)
		if raw == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), authorIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthorID returns the resolved author identity stored by RequireIdentity.
func AuthorID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(authorIDKey).(uuid.UUID)
	return id, ok
}
