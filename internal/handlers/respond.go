// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Inkwell publishing
// engine. Handlers are grouped by concern (public, manage) and receive their
// dependencies through the handler struct. Responses are plain data
// structures serialized as JSON — the rendering boundary owns presentation.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"inkwell/internal/store"
)

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// errorBody is the JSON shape for all error responses.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondError translates the store error taxonomy into HTTP responses:
// validation and referential-integrity problems are the caller's fault
// (422), missing entities are 404, anything else is a 500 with the detail
// kept in the server log.
func respondError(w http.ResponseWriter, err error) {
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{Error: verr.Message, Field: verr.Field})
		return
	}

	var rerr *store.ReferentialIntegrityError
	if errors.As(err, &rerr) {
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{Error: rerr.Error(), Field: rerr.Field})
		return
	}

	if errors.Is(err, store.ErrNotFound) {
		respondJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}

	slog.Error("request failed", "error", err)
	respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}
