// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication and
// request protection.
package middleware

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
)

// SessionKeyAdmin marks a session as an authenticated admin session.
const SessionKeyAdmin = "is_admin"

// Auth creates middleware that requires an authenticated admin session
// and redirects to the login page otherwise.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sm.GetBool(r.Context(), SessionKeyAdmin) {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsAuthenticated reports whether the request carries an authenticated
// admin session.
func IsAuthenticated(sm *scs.SessionManager, r *http.Request) bool {
	return sm.GetBool(r.Context(), SessionKeyAdmin)
}
