// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// UserStore manages author identities. Authentication lives upstream; this
// store only keeps the rows article author references point at.
type UserStore struct {
	db *sql.DB
}

// NewUserStore returns a new UserStore.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, name, email, created_at, updated_at`

func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := scanner.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new author identity.
func (s *UserStore) Create(u *models.User) (*models.User, error) {
	if strings.TrimSpace(u.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	if strings.TrimSpace(u.Email) == "" {
		return nil, &ValidationError{Field: "email", Message: "email is required"}
	}

	row := s.db.QueryRow(`
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING `+userColumns,
		u.Name, u.Email,
	)
	result, err := scanUser(row)
	if err != nil {
		if terr := translateConstraint(err); terr != nil {
			return nil, terr
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return result, nil
}

// FindByID retrieves an author by ID.
func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}
