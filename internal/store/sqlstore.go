// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/oblog-go/internal/model"
)

// SQLStore persists posts as rows in a single SQLite table with a
// uniqueness constraint on slug and a server-assigned numeric key.
// It relies entirely on per-statement atomicity; no invariant here
// spans two statements, so no multi-statement transactions are used.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore creates a table-backed post repository. The caller is
// responsible for running Migrate on db first.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

const postColumns = "id, title, slug, excerpt, content, date, category, image_url, created_at, updated_at"

// GetAll returns every post ordered by date descending. Rows sharing a
// date come back in storage order, which is stable but unspecified.
func (s *SQLStore) GetAll(ctx context.Context) ([]model.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+postColumns+" FROM posts ORDER BY date DESC")
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	posts := make([]model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating posts: %w", err)
	}
	return posts, nil
}

// GetBySlug returns the row stored under slug, or ErrNotFound.
func (s *SQLStore) GetBySlug(ctx context.Context, slug string) (model.Post, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE slug = ?", slug)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Post{}, ErrNotFound
		}
		return model.Post{}, fmt.Errorf("getting post %q: %w", slug, err)
	}
	return post, nil
}

// Insert appends a row and returns it with its assigned id. The unique
// constraint on slug turns collisions into ErrSlugExists.
func (s *SQLStore) Insert(ctx context.Context, p model.Post) (model.Post, error) {
	if err := ValidatePost(p); err != nil {
		return model.Post{}, err
	}

	now := time.Now()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (title, slug, excerpt, content, date, category, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.Date, p.Category, p.ImageURL, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Post{}, ErrSlugExists
		}
		return model.Post{}, fmt.Errorf("inserting post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Post{}, fmt.Errorf("reading inserted id: %w", err)
	}

	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

// Update replaces the row identified by slug (resolved to its numeric
// id first) and stamps updated_at. Full replacement only; there is no
// field-level patch.
func (s *SQLStore) Update(ctx context.Context, slug string, p model.Post) (model.Post, error) {
	if err := ValidatePost(p); err != nil {
		return model.Post{}, err
	}

	current, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return model.Post{}, err
	}

	now := time.Now()
	_, err = s.db.ExecContext(ctx,
		`UPDATE posts
		 SET title = ?, slug = ?, excerpt = ?, content = ?, date = ?, category = ?, image_url = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.Date, p.Category, p.ImageURL, now, current.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Post{}, ErrSlugExists
		}
		return model.Post{}, fmt.Errorf("updating post %q: %w", slug, err)
	}

	p.ID = current.ID
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = now
	return p, nil
}

// Delete removes the row keyed by slug and returns it, or ErrNotFound.
func (s *SQLStore) Delete(ctx context.Context, slug string) (model.Post, error) {
	row := s.db.QueryRowContext(ctx,
		"DELETE FROM posts WHERE slug = ? RETURNING "+postColumns, slug)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Post{}, ErrNotFound
		}
		return model.Post{}, fmt.Errorf("deleting post %q: %w", slug, err)
	}
	return post, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content,
		&p.Date, &p.Category, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure. Both the modernc and mattn drivers surface the constraint
// name in the error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
