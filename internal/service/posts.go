// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the application logic between the HTTP
// handlers and the storage backends.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/store"
	"github.com/olegiv/oblog-go/internal/util"
)

// PostService wraps a PostRepository with the defaulting rules applied
// before persistence. It is backend-agnostic; the repository decides
// where posts live.
type PostService struct {
	repo   store.PostRepository
	logger *slog.Logger
}

// NewPostService creates a new post service.
func NewPostService(repo store.PostRepository, logger *slog.Logger) *PostService {
	return &PostService{repo: repo, logger: logger}
}

// List returns every post, newest date first.
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	return s.repo.GetAll(ctx)
}

// Get returns the post stored under slug.
func (s *PostService) Get(ctx context.Context, slug string) (model.Post, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// Create stores a new post. A missing slug is derived from the title
// and a missing date defaults to today, so a minimal payload of title,
// content, and category is enough to publish.
func (s *PostService) Create(ctx context.Context, p model.Post) (model.Post, error) {
	if p.Slug == "" {
		p.Slug = util.Slugify(p.Title)
	}
	if p.Date == "" {
		p.Date = time.Now().Format(model.DateLayout)
	}

	created, err := s.repo.Insert(ctx, p)
	if err != nil {
		return model.Post{}, err
	}
	s.logger.Info("post created", "slug", created.Slug, "category", created.Category)
	return created, nil
}

// Update replaces the post stored under slug. The date is preserved
// from the stored post when the payload omits it.
func (s *PostService) Update(ctx context.Context, slug string, p model.Post) (model.Post, error) {
	if p.Date == "" {
		existing, err := s.repo.GetBySlug(ctx, slug)
		if err != nil {
			return model.Post{}, err
		}
		p.Date = existing.Date
	}

	updated, err := s.repo.Update(ctx, slug, p)
	if err != nil {
		return model.Post{}, err
	}
	s.logger.Info("post updated", "slug", slug)
	return updated, nil
}

// Delete removes the post stored under slug and returns it.
func (s *PostService) Delete(ctx context.Context, slug string) (model.Post, error) {
	deleted, err := s.repo.Delete(ctx, slug)
	if err != nil {
		return model.Post{}, err
	}
	s.logger.Info("post deleted", "slug", slug)
	return deleted, nil
}

// Categories returns the distinct categories across all posts, sorted
// alphabetically. Used to build the filter bar on the blog listing.
func (s *PostService) Categories(ctx context.Context) ([]string, error) {
	posts, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	seen := make(map[string]struct{})
	var categories []string
	for _, p := range posts {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// Related returns up to limit posts sharing the given post's category,
// excluding the post itself, newest first.
func (s *PostService) Related(ctx context.Context, p model.Post, limit int) ([]model.Post, error) {
	posts, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	var related []model.Post
	for _, other := range posts {
		if other.Slug == p.Slug || other.Category != p.Category {
			continue
		}
		related = append(related, other)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}
