// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/render"
	"github.com/olegiv/oblog-go/internal/service"
	"github.com/olegiv/oblog-go/internal/store"
)

// AdminHandler serves the admin console pages. Mutations go through
// the JSON API from the page scripts; these handlers only render.
type AdminHandler struct {
	posts    *service.PostService
	renderer *render.Renderer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(posts *service.PostService, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{posts: posts, renderer: renderer}
}

// Posts renders the post management table.
func (h *AdminHandler) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		logAndInternalError(w, r, "listing posts", err)
		return
	}

	data := struct {
		Posts []model.Post
	}{Posts: posts}

	if err := h.renderer.Render(w, r, "admin/posts", render.TemplateData{
		Title: "Manage Posts", Data: data, IsAdmin: true,
	}); err != nil {
		logAndInternalError(w, r, "rendering admin posts page", err)
	}
}

// editData is the editor page payload. IsNew distinguishes the create
// form from the edit form sharing one template.
type editData struct {
	Post  model.Post
	IsNew bool
}

// NewPost renders an empty editor.
func (h *AdminHandler) NewPost(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "admin/edit", render.TemplateData{
		Title: "New Post", Data: editData{IsNew: true}, IsAdmin: true,
	}); err != nil {
		logAndInternalError(w, r, "rendering editor", err)
	}
}

// EditPost renders the editor pre-filled with an existing post.
func (h *AdminHandler) EditPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.posts.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			flashError(w, r, h.renderer, RouteAdmin, "Post not found")
			return
		}
		logAndInternalError(w, r, "loading post", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/edit", render.TemplateData{
		Title: "Edit Post", Data: editData{Post: post}, IsAdmin: true,
	}); err != nil {
		logAndInternalError(w, r, "rendering editor", err)
	}
}
