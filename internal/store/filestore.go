// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/util"
)

// FileStore persists each post as one pretty-printed JSON document named
// <slug>.json inside a dedicated directory.
//
// Writes are plain read-modify-write against the filesystem with no
// locking or version check: concurrent requests targeting the same slug
// race and the last writer wins. That matches the observable behavior
// of the storage model and is deliberately not masked here.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed post repository rooted at dir.
// Call Init before serving traffic.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Init creates the posts directory if it does not exist. Idempotent;
// must run once before the repository accepts traffic.
func (s *FileStore) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating posts directory: %w", err)
	}
	return nil
}

// GetAll lists the directory, parses every .json document, and sorts in
// memory by date descending. Dates are YYYY-MM-DD strings, so byte
// comparison is chronological.
func (s *FileStore) GetAll(_ context.Context) ([]model.Post, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Post{}, nil
		}
		return nil, fmt.Errorf("reading posts directory: %w", err)
	}

	posts := make([]model.Post, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		post, err := s.readPost(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})

	return posts, nil
}

// GetBySlug returns the post stored under slug, or ErrNotFound.
func (s *FileStore) GetBySlug(_ context.Context, slug string) (model.Post, error) {
	if !util.IsValidSlug(slug) {
		return model.Post{}, ErrNotFound
	}
	post, err := s.readPost(s.postPath(slug))
	if err != nil {
		if os.IsNotExist(err) {
			return model.Post{}, ErrNotFound
		}
		return model.Post{}, err
	}
	return post, nil
}

// Insert stores a new post under its slug. A slug collision is an
// explicit conflict: silently overwriting the prior post (what naming
// files after slugs would otherwise do) loses data.
func (s *FileStore) Insert(_ context.Context, p model.Post) (model.Post, error) {
	if err := ValidatePost(p); err != nil {
		return model.Post{}, err
	}

	path := s.postPath(p.Slug)
	if _, err := os.Stat(path); err == nil {
		return model.Post{}, ErrSlugExists
	} else if !os.IsNotExist(err) {
		return model.Post{}, fmt.Errorf("checking post file: %w", err)
	}

	if err := s.writePost(path, p); err != nil {
		return model.Post{}, err
	}
	return p, nil
}

// Update replaces the post stored under slug. The payload slug must
// equal the identifier: slugs are immutable once a post exists.
func (s *FileStore) Update(_ context.Context, slug string, p model.Post) (model.Post, error) {
	if !util.IsValidSlug(slug) {
		return model.Post{}, ErrNotFound
	}
	if _, err := os.Stat(s.postPath(slug)); err != nil {
		if os.IsNotExist(err) {
			return model.Post{}, ErrNotFound
		}
		return model.Post{}, fmt.Errorf("checking post file: %w", err)
	}
	if p.Slug != slug {
		return model.Post{}, ErrSlugImmutable
	}
	if err := ValidatePost(p); err != nil {
		return model.Post{}, err
	}

	if err := s.writePost(s.postPath(slug), p); err != nil {
		return model.Post{}, err
	}
	return p, nil
}

// Delete removes the document stored under slug and returns the removed
// post, or ErrNotFound. There is no soft delete.
func (s *FileStore) Delete(ctx context.Context, slug string) (model.Post, error) {
	post, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return model.Post{}, err
	}
	if err := os.Remove(s.postPath(slug)); err != nil {
		if os.IsNotExist(err) {
			return model.Post{}, ErrNotFound
		}
		return model.Post{}, fmt.Errorf("removing post file: %w", err)
	}
	return post, nil
}

func (s *FileStore) postPath(slug string) string {
	return filepath.Join(s.dir, slug+".json")
}

func (s *FileStore) readPost(path string) (model.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Post{}, err
	}
	var post model.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return model.Post{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return post, nil
}

func (s *FileStore) writePost(path string, p model.Post) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding post: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing post file: %w", err)
	}
	return nil
}
