// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the API endpoints on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/posts", h.ListPosts)
	r.Post("/posts", h.CreatePost)
	r.Get("/posts/{slug}", h.GetPost)
	r.Put("/posts/{slug}", h.UpdatePost)
	r.Delete("/posts/{slug}", h.DeletePost)
	r.Post("/upload", h.Upload)
	r.Delete("/upload/{name}", h.DeleteUpload)
}
