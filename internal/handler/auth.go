// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/oblog-go/internal/auth"
	"github.com/olegiv/oblog-go/internal/middleware"
	"github.com/olegiv/oblog-go/internal/render"
)

// AuthHandler handles the admin login and logout routes. The site has a
// single admin account whose password arrives via configuration and is
// hashed once at startup; there is no user table.
type AuthHandler struct {
	passwordHash   string
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewAuthHandler creates a new AuthHandler. adminPassword is the
// plaintext configured password; it is hashed here so the handler never
// keeps the plaintext around.
func NewAuthHandler(adminPassword string, renderer *render.Renderer, sm *scs.SessionManager) (*AuthHandler, error) {
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{
		passwordHash:   hash,
		renderer:       renderer,
		sessionManager: sm,
	}, nil
}

// LoginForm renders the login page. Authenticated admins are sent
// straight to the console.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.IsAuthenticated(h.sessionManager, r) {
		http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "login", render.TemplateData{Title: "Login"}); err != nil {
		logAndInternalError(w, r, "rendering login page", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, RouteLogin, "Invalid form data")
		return
	}

	password := r.FormValue("password")
	if password == "" {
		flashError(w, r, h.renderer, RouteLogin, "Password is required")
		return
	}

	valid, err := auth.CheckPassword(password, h.passwordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		flashError(w, r, h.renderer, RouteLogin, "Invalid credentials")
		return
	}
	if !valid {
		slog.Debug("invalid admin password attempt", "ip", r.RemoteAddr)
		flashError(w, r, h.renderer, RouteLogin, "Invalid credentials")
		return
	}

	// Renew the session token on privilege change
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, r, "renewing session token", err)
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyAdmin, true)

	slog.Info("admin logged in", "ip", r.RemoteAddr)
	http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
}

// Logout destroys the session and returns to the public site.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		logAndInternalError(w, r, "destroying session", err)
		return
	}
	// Destroy leaves a fresh session behind for this request, so the
	// flash survives into it.
	flashSuccess(w, r, h.renderer, RouteRoot, "Logged out")
}
