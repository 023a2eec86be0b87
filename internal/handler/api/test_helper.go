// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"io"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/oblog-go/internal/service"
	"github.com/olegiv/oblog-go/internal/store"
)

// newTestHandler builds an API handler over a file-backed store in a
// temp directory, mounted on a chi router the way main does it.
func newTestHandler(t *testing.T) (*Handler, chi.Router) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fs := store.NewFileStore(t.TempDir())
	require.NoError(t, fs.Init())
	posts := service.NewPostService(fs, logger)

	media := service.NewMediaService(t.TempDir(), logger)
	require.NoError(t, media.Init())

	h := NewHandler(posts, media, logger)

	r := chi.NewRouter()
	r.Route("/api", h.Routes)
	return h, r
}
