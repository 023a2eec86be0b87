package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/oblog-go/internal/middleware"
)

const testAdminPassword = "correct horse battery staple"

func newAuthRouter(t *testing.T) (*chi.Mux, *scs.SessionManager) {
	t.Helper()

	sm := scs.New()
	renderer := newTestRenderer(t, sm)

	h, err := NewAuthHandler(testAdminPassword, renderer, sm)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(sm))
		r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r, sm
}

func postForm(t *testing.T, r http.Handler, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLoginFormRenders(t *testing.T) {
	r, _ := newAuthRouter(t)

	rec := get(t, r, "/login")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="password"`)
}

func TestLoginSuccess(t *testing.T) {
	r, _ := newAuthRouter(t)

	rec := postForm(t, r, "/login", url.Values{"password": {testAdminPassword}}, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, RouteAdmin, rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Session now passes the admin gate.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	adminRec := httptest.NewRecorder()
	r.ServeHTTP(adminRec, req)
	assert.Equal(t, http.StatusOK, adminRec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := newAuthRouter(t)

	rec := postForm(t, r, "/login", url.Values{"password": {"wrong"}}, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, RouteLogin, rec.Header().Get("Location"))

	// The session cookie it may have set must not pass the gate.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	adminRec := httptest.NewRecorder()
	r.ServeHTTP(adminRec, req)
	assert.Equal(t, http.StatusSeeOther, adminRec.Code)
	assert.Equal(t, "/login", adminRec.Header().Get("Location"))
}

func TestLoginMissingPassword(t *testing.T) {
	r, _ := newAuthRouter(t)

	rec := postForm(t, r, "/login", url.Values{}, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, RouteLogin, rec.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	r, _ := newAuthRouter(t)

	loginRec := postForm(t, r, "/login", url.Values{"password": {testAdminPassword}}, nil)
	cookies := loginRec.Result().Cookies()
	require.NotEmpty(t, cookies)

	logoutRec := postForm(t, r, "/logout", url.Values{}, cookies)
	assert.Equal(t, http.StatusSeeOther, logoutRec.Code)
	assert.Equal(t, RouteRoot, logoutRec.Header().Get("Location"))

	// The old session no longer passes the gate.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	adminRec := httptest.NewRecorder()
	r.ServeHTTP(adminRec, req)
	assert.Equal(t, http.StatusSeeOther, adminRec.Code)
}

func TestLogoutShowsFlash(t *testing.T) {
	r, _ := newAuthRouter(t)

	loginRec := postForm(t, r, "/login", url.Values{"password": {testAdminPassword}}, nil)
	logoutRec := postForm(t, r, "/logout", url.Values{}, loginRec.Result().Cookies())
	require.Equal(t, http.StatusSeeOther, logoutRec.Code)

	// The flash set on logout shows on the next rendered page.
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range logoutRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "flash-success")
	assert.Contains(t, body, "Logged out")
}
