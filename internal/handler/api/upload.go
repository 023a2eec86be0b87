// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// uploadResponse is the {success, filePath} upload acknowledgement.
// The path is relative to the site root and can be embedded directly
// in post content.
type uploadResponse struct {
	Success  bool   `json:"success"`
	FilePath string `json:"filePath"`
}

// Upload handles POST /api/upload. The image arrives as multipart form
// field "file".
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	path, err := h.media.Store(file, header)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, uploadResponse{Success: true, FilePath: path})
}

// DeleteUpload handles DELETE /api/upload/{name}. The name is the bare
// stored filename, as returned in the upload filePath.
func (h *Handler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.media.Delete(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			WriteError(w, http.StatusNotFound, "File not found")
			return
		}
		h.logger.Error("deleting upload", "file", name, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusOK, messageResponse{Success: true, Message: "File deleted successfully"})
}
