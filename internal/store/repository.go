// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides post persistence behind a single repository
// contract with two interchangeable backends: a file-per-post JSON
// store and a SQLite table. A deployment selects one backend via
// configuration; call sites never branch on the variant.
package store

import (
	"context"

	"github.com/olegiv/oblog-go/internal/model"
)

// Backend kinds selectable via configuration.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
)

// PostRepository is the canonical post persistence contract.
//
// Every listing is ordered by date descending; the order among posts
// sharing a date is stable but unspecified (whatever the storage
// iteration yields). Updates are full replacements, deletes are
// unconditional and irreversible.
type PostRepository interface {
	// GetAll returns every post, newest date first.
	GetAll(ctx context.Context) ([]model.Post, error)

	// GetBySlug returns the post stored under slug, or ErrNotFound.
	GetBySlug(ctx context.Context, slug string) (model.Post, error)

	// Insert stores a new post and returns it as stored. Fails with a
	// ValidationError on missing required fields and with ErrSlugExists
	// when the slug is already taken.
	Insert(ctx context.Context, p model.Post) (model.Post, error)

	// Update replaces the post stored under slug and returns the stored
	// result. Fails with ErrNotFound when no post matches and with a
	// ValidationError on the same required-field checks as Insert.
	Update(ctx context.Context, slug string, p model.Post) (model.Post, error)

	// Delete removes the post stored under slug and returns it, or
	// ErrNotFound when nothing is stored there.
	Delete(ctx context.Context, slug string) (model.Post, error)
}
