package handler

import (
	"net/http"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/oblog-go/internal/model"
)

func newAdminRouter(t *testing.T) *chi.Mux {
	t.Helper()

	sm := scs.New()
	renderer := newTestRenderer(t, sm)
	posts := newTestPostService(t)
	seedPosts(t, posts,
		model.Post{Title: "Draft Notes", Content: "x", Category: "go", Date: "2025-01-02"},
		model.Post{Title: "Shipping Day", Content: "x", Category: "life", Date: "2025-01-01"},
	)

	h := NewAdminHandler(posts, renderer)
	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Get("/admin", h.Posts)
	r.Get("/admin/posts/new", h.NewPost)
	r.Get("/admin/posts/{slug}/edit", h.EditPost)
	return r
}

func TestAdminPostsTable(t *testing.T) {
	r := newAdminRouter(t)

	rec := get(t, r, "/admin")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Draft Notes")
	assert.Contains(t, body, "Shipping Day")
	assert.Contains(t, body, `data-slug="draft-notes"`)
	assert.Contains(t, body, "/admin/posts/draft-notes/edit")
}

func TestAdminNewPostForm(t *testing.T) {
	r := newAdminRouter(t)

	rec := get(t, r, "/admin/posts/new")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "New Post")
	assert.Contains(t, body, `data-new="true"`)
}

func TestAdminEditPostForm(t *testing.T) {
	r := newAdminRouter(t)

	rec := get(t, r, "/admin/posts/draft-notes/edit")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Edit Post")
	assert.Contains(t, body, `value="Draft Notes"`)
	assert.Contains(t, body, "readonly", "slug locked on existing posts")
}

func TestAdminEditMissingPostRedirects(t *testing.T) {
	r := newAdminRouter(t)

	rec := get(t, r, "/admin/posts/missing/edit")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, RouteAdmin, rec.Header().Get("Location"))
}
