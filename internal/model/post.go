// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the calendar date format posts are stamped with.
// The date string is the sole sort key for every listing.
const DateLayout = "2006-01-02"

// Post represents a blog post. The slug is the canonical identifier:
// the file-backed store has no numeric ID and names the document after
// the slug, the table-backed store additionally assigns a surrogate key.
type Post struct {
	ID        int64     `json:"id,omitempty"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Content   string    `json:"content"`
	Date      string    `json:"date"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Preview returns the excerpt, falling back to a truncated content
// preview when no excerpt was supplied.
func (p *Post) Preview(maxRunes int) string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	content := strings.TrimSpace(p.Content)
	if utf8.RuneCountInString(content) <= maxRunes {
		return content
	}
	runes := []rune(content)
	return strings.TrimSpace(string(runes[:maxRunes])) + "..."
}

// ParsedDate returns the post date as a time.Time, or the zero time if
// the date string does not parse.
func (p *Post) ParsedDate() time.Time {
	t, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
