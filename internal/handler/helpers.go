// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTML page handlers for the public site
// and the admin console.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/oblog-go/internal/render"
)

// Route paths shared by handlers and redirects.
const (
	RouteRoot  = "/"
	RouteLogin = "/login"
	RouteAdmin = "/admin"
)

// flashError sets an error flash message and redirects.
func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirect, message string) {
	renderer.SetFlash(r, message, "error")
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// flashSuccess sets a success flash message and redirects.
func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirect, message string) {
	renderer.SetFlash(r, message, "success")
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// logAndInternalError logs the error and replies with a plain 500 page.
func logAndInternalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "path", r.URL.Path)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
