package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/oblog-go/internal/model"
)

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func seedPost(t *testing.T, r http.Handler, title, slug, category, date string) model.Post {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/api/posts", model.Post{
		Title: title, Slug: slug, Content: "Body of " + title, Category: category, Date: date,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[postResponse](t, rec).Post
}

func TestListPostsEmpty(t *testing.T) {
	_, r := newTestHandler(t)

	rec := doJSON(t, r, http.MethodGet, "/api/posts", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String(), "empty store yields an empty array, not null")
}

func TestListPostsOrdering(t *testing.T) {
	_, r := newTestHandler(t)

	seedPost(t, r, "Older", "older", "misc", "2025-01-10")
	seedPost(t, r, "Newest", "newest", "misc", "2025-03-01")
	seedPost(t, r, "Middle", "middle", "misc", "2025-02-15")

	rec := doJSON(t, r, http.MethodGet, "/api/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	posts := decodeBody[[]model.Post](t, rec)
	require.Len(t, posts, 3)
	assert.Equal(t, "newest", posts[0].Slug)
	assert.Equal(t, "middle", posts[1].Slug)
	assert.Equal(t, "older", posts[2].Slug)
}

func TestCreatePost(t *testing.T) {
	_, r := newTestHandler(t)

	rec := doJSON(t, r, http.MethodPost, "/api/posts", model.Post{
		Title: "Hello World", Slug: "hello-world", Content: "First!", Category: "general",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[postResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "hello-world", resp.Post.Slug)
	assert.NotEmpty(t, resp.Post.Date, "date defaulted")
}

func TestCreatePostValidation(t *testing.T) {
	_, r := newTestHandler(t)

	rec := doJSON(t, r, http.MethodPost, "/api/posts", model.Post{
		Title: "No Category", Slug: "no-category", Content: "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	assert.Contains(t, body["error"], "category")
}

func TestCreatePostInvalidJSON(t *testing.T) {
	_, r := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePostSlugConflict(t *testing.T) {
	_, r := newTestHandler(t)

	seedPost(t, r, "First", "taken", "misc", "2025-01-01")

	rec := doJSON(t, r, http.MethodPost, "/api/posts", model.Post{
		Title: "Second", Slug: "taken", Content: "x", Category: "misc",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	assert.NotEmpty(t, body["error"])
}

func TestGetPost(t *testing.T) {
	_, r := newTestHandler(t)

	seedPost(t, r, "Findable", "findable", "misc", "2025-01-01")

	rec := doJSON(t, r, http.MethodGet, "/api/posts/findable", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	post := decodeBody[model.Post](t, rec)
	assert.Equal(t, "Findable", post.Title)
}

func TestGetPostNotFound(t *testing.T) {
	_, r := newTestHandler(t)

	rec := doJSON(t, r, http.MethodGet, "/api/posts/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "Post not found", body["error"])
}

func TestUpdatePost(t *testing.T) {
	_, r := newTestHandler(t)

	seedPost(t, r, "Before", "stable-slug", "misc", "2025-01-01")

	rec := doJSON(t, r, http.MethodPut, "/api/posts/stable-slug", model.Post{
		Title: "After", Slug: "stable-slug", Content: "Updated body", Category: "misc", Date: "2025-01-01",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[postResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "After", resp.Post.Title)
}

func TestUpdatePostSlugMismatch(t *testing.T) {
	_, r := newTestHandler(t)

	seedPost(t, r, "Original", "original", "misc", "2025-01-01")

	rec := doJSON(t, r, http.MethodPut, "/api/posts/original", model.Post{
		Title: "Renamed", Slug: "renamed", Content: "x", Category: "misc", Date: "2025-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "Slug cannot be changed", body["error"])
}

func TestUpdatePostOmittedSlugDefaultsToPath(t *testing.T) {
	_, r := newTestHandler(t)

	seedPost(t, r, "Original", "keep-me", "misc", "2025-01-01")

	rec := doJSON(t, r, http.MethodPut, "/api/posts/keep-me", map[string]string{
		"title": "Edited", "content": "x", "category": "misc", "date": "2025-01-01",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[postResponse](t, rec)
	assert.Equal(t, "keep-me", resp.Post.Slug)
}

func TestUpdatePostNotFound(t *testing.T) {
	_, r := newTestHandler(t)

	rec := doJSON(t, r, http.MethodPut, "/api/posts/missing", model.Post{
		Title: "X", Slug: "missing", Content: "x", Category: "misc", Date: "2025-01-01",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletePost(t *testing.T) {
	_, r := newTestHandler(t)

	seedPost(t, r, "Doomed", "doomed", "misc", "2025-01-01")

	rec := doJSON(t, r, http.MethodDelete, "/api/posts/doomed", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[messageResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Post deleted successfully", resp.Message)

	rec = doJSON(t, r, http.MethodGet, "/api/posts/doomed", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletePostNotFound(t *testing.T) {
	_, r := newTestHandler(t)

	rec := doJSON(t, r, http.MethodDelete, "/api/posts/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
