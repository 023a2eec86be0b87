// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"errors"

	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/util"
)

// Sentinel errors shared by both repository backends. Handlers map them
// to HTTP statuses; anything else is treated as a storage failure.
var (
	// ErrNotFound is returned when no post exists under the given slug.
	ErrNotFound = errors.New("post not found")

	// ErrSlugExists is returned when inserting a post whose slug is
	// already taken. The original file store silently overwrote the
	// prior post instead; that was a defect, not behavior to keep.
	ErrSlugExists = errors.New("slug already exists")

	// ErrSlugImmutable is returned by the file-backed store when an
	// update payload carries a slug different from the one being edited.
	ErrSlugImmutable = errors.New("slug cannot be changed")
)

// ValidationError reports a post payload failing a required-field or
// format check. It is client-correctable (HTTP 400).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidatePost checks the required-field invariants shared by insert
// and update on both backends. The slug must be present and URL-safe:
// it names files on disk in the file-backed store.
func ValidatePost(p model.Post) error {
	if p.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if p.Content == "" {
		return &ValidationError{Field: "content", Message: "is required"}
	}
	if p.Category == "" {
		return &ValidationError{Field: "category", Message: "is required"}
	}
	if p.Slug == "" {
		return &ValidationError{Field: "slug", Message: "is required"}
	}
	if !util.IsValidSlug(p.Slug) {
		return &ValidationError{Field: "slug", Message: "must contain only lowercase letters, digits, and hyphens"}
	}
	return nil
}
