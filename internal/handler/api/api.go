// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON API consumed by the public site and
// the admin console.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/oblog-go/internal/service"
	"github.com/olegiv/oblog-go/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	posts  *service.PostService
	media  *service.MediaService
	logger *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(posts *service.PostService, media *service.MediaService, logger *slog.Logger) *Handler {
	return &Handler{
		posts:  posts,
		media:  media,
		logger: logger,
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes the flat {"error": message} shape every failure
// response uses.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, map[string]string{"error": message})
}

// writeStoreError maps a storage or service error to its HTTP response.
// Unexpected errors are logged and masked behind a generic message.
func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *store.ValidationError

	switch {
	case errors.As(err, &ve):
		WriteError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, store.ErrSlugExists):
		WriteError(w, http.StatusConflict, "A post with this slug already exists")
	case errors.Is(err, store.ErrSlugImmutable):
		WriteError(w, http.StatusBadRequest, "Slug cannot be changed")
	case errors.Is(err, service.ErrUnsupportedType):
		WriteError(w, http.StatusBadRequest, "Unsupported file type")
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
