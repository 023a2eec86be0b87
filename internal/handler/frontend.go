// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/oblog-go/internal/markdown"
	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/render"
	"github.com/olegiv/oblog-go/internal/service"
	"github.com/olegiv/oblog-go/internal/store"
)

// relatedPostLimit caps the "related posts" strip on the detail page.
const relatedPostLimit = 3

// FrontendHandler serves the public site pages.
type FrontendHandler struct {
	posts    *service.PostService
	renderer *render.Renderer
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(posts *service.PostService, renderer *render.Renderer) *FrontendHandler {
	return &FrontendHandler{posts: posts, renderer: renderer}
}

// homeData is the server-rendered landing page payload.
type homeData struct {
	Featured *model.Post
	Recent   []model.Post
}

// Home renders the landing page: the newest post featured, the next
// few as teasers.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		logAndInternalError(w, r, "listing posts", err)
		return
	}

	data := homeData{}
	if len(posts) > 0 {
		data.Featured = &posts[0]
		if len(posts) > 1 {
			recent := posts[1:]
			if len(recent) > relatedPostLimit {
				recent = recent[:relatedPostLimit]
			}
			data.Recent = recent
		}
	}

	if err := h.renderer.Render(w, r, "home", render.TemplateData{Data: data}); err != nil {
		logAndInternalError(w, r, "rendering home page", err)
	}
}

// Blog renders the post listing shell. The page script fetches the
// full post list from the API and filters by category client-side, so
// the server only supplies the category set for the filter bar.
func (h *FrontendHandler) Blog(w http.ResponseWriter, r *http.Request) {
	categories, err := h.posts.Categories(r.Context())
	if err != nil {
		logAndInternalError(w, r, "listing categories", err)
		return
	}

	data := struct {
		Categories []string
	}{Categories: categories}

	if err := h.renderer.Render(w, r, "blog", render.TemplateData{Title: "Blog", Data: data}); err != nil {
		logAndInternalError(w, r, "rendering blog page", err)
	}
}

// About renders the static profile page. The profile image is handled
// client-side against the upload API, so there is no data to load.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "about", render.TemplateData{Title: "About"}); err != nil {
		logAndInternalError(w, r, "rendering about page", err)
	}
}

// postData is the post detail page payload.
type postData struct {
	Post    model.Post
	Body    template.HTML
	TOC     []markdown.Heading
	Related []model.Post
}

// Post renders a single post with its table of contents and up to
// three related posts from the same category.
func (h *FrontendHandler) Post(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.posts.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		logAndInternalError(w, r, "loading post", err)
		return
	}

	body, err := markdown.Render(post.Content)
	if err != nil {
		logAndInternalError(w, r, "rendering post body", err)
		return
	}

	related, err := h.posts.Related(r.Context(), post, relatedPostLimit)
	if err != nil {
		logAndInternalError(w, r, "loading related posts", err)
		return
	}

	data := postData{
		Post:    post,
		Body:    body,
		TOC:     markdown.ExtractTOC(post.Content),
		Related: related,
	}

	if err := h.renderer.Render(w, r, "post", render.TemplateData{Title: post.Title, Data: data}); err != nil {
		logAndInternalError(w, r, "rendering post page", err)
	}
}
