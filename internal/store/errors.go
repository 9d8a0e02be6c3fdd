// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// errors.go defines the error taxonomy shared by all stores. Write
// operations are all-or-nothing: validation failures abort before any SQL
// runs, and constraint violations coming back from Postgres are translated
// here so callers never handle raw driver errors for input problems.
package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when the referenced entity does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError reports malformed, missing, or out-of-range input,
// with the offending field attached.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ReferentialIntegrityError reports a write whose category or author
// reference does not exist at write time.
type ReferentialIntegrityError struct {
	Field string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s: referenced record does not exist", e.Field)
}

// Postgres error codes surfaced through pgconn.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateConstraint maps a database constraint violation onto the error
// taxonomy. Returns nil when the error is not a recognized constraint
// violation, in which case the caller wraps it as an internal error.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case "articles_slug_key":
			return &ValidationError{Field: "slug", Message: "an article with this slug already exists"}
		case "categories_slug_key":
			return &ValidationError{Field: "slug", Message: "a category with this slug already exists"}
		case "categories_name_key":
			return &ValidationError{Field: "name", Message: "a category with this name already exists"}
		case "users_email_key":
			return &ValidationError{Field: "email", Message: "a user with this email already exists"}
		}
		return &ValidationError{Field: pgErr.ConstraintName, Message: "duplicate value"}

	case pgForeignKeyViolation:
		switch pgErr.ConstraintName {
		case "articles_category_id_fkey":
			return &ReferentialIntegrityError{Field: "category_id"}
		case "articles_author_id_fkey":
			return &ReferentialIntegrityError{Field: "author_id"}
		}
		return &ReferentialIntegrityError{Field: pgErr.ConstraintName}
	}

	return nil
}
