// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/oblog-go/internal/model"
)

// postResponse wraps a mutated post for the {success, post} shape.
type postResponse struct {
	Success bool       `json:"success"`
	Post    model.Post `json:"post"`
}

// messageResponse is the {success, message} delete acknowledgement.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListPosts handles GET /api/posts. The response is the bare array,
// newest first; clients filter by category on their side.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	WriteJSON(w, http.StatusOK, posts)
}

// GetPost handles GET /api/posts/{slug}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.posts.Get(r.Context(), slug)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, post)
}

// CreatePost handles POST /api/posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var p model.Post
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	created, err := h.posts.Create(r.Context(), p)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, postResponse{Success: true, Post: created})
}

// UpdatePost handles PUT /api/posts/{slug}. The payload's slug, when
// present, must match the path slug.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var p model.Post
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if p.Slug == "" {
		p.Slug = slug
	}

	updated, err := h.posts.Update(r.Context(), slug, p)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, postResponse{Success: true, Post: updated})
}

// DeletePost handles DELETE /api/posts/{slug}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if _, err := h.posts.Delete(r.Context(), slug); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Post deleted successfully"})
}
