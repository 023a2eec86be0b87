// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"io/fs"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/render"
	"github.com/olegiv/oblog-go/internal/service"
	"github.com/olegiv/oblog-go/internal/store"
	"github.com/olegiv/oblog-go/internal/testutil"
	"github.com/olegiv/oblog-go/web"
)

// newTestRenderer parses the real embedded templates.
func newTestRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()

	templates, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)

	renderer, err := render.New(render.Config{
		TemplatesFS:    templates,
		SessionManager: sm,
		SiteName:       "oBlog",
	})
	require.NoError(t, err)
	return renderer
}

// newTestPostService builds a post service over a file store in a temp
// directory.
func newTestPostService(t *testing.T) *service.PostService {
	t.Helper()

	fs := store.NewFileStore(t.TempDir())
	require.NoError(t, fs.Init())
	return service.NewPostService(fs, testutil.TestLogger())
}

// seedPosts inserts posts directly through the service.
func seedPosts(t *testing.T, posts *service.PostService, seed ...model.Post) {
	t.Helper()

	for _, p := range seed {
		_, err := posts.Create(context.Background(), p)
		require.NoError(t, err)
	}
}
