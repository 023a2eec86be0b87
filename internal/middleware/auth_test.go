package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRedirectsWithoutSession(t *testing.T) {
	sm := scs.New()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := sm.LoadAndSave(Auth(sm)(next))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAuthAllowsAdminSession(t *testing.T) {
	sm := scs.New()

	called := false
	var mark http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), SessionKeyAdmin, true)
		w.WriteHeader(http.StatusOK)
	}

	// First request establishes the session and yields the cookie.
	loginReq := httptest.NewRequest(http.MethodPost, "/login", nil)
	loginRec := httptest.NewRecorder()
	sm.LoadAndSave(mark).ServeHTTP(loginRec, loginReq)
	cookies := loginRec.Result().Cookies()
	require.NotEmpty(t, cookies)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	handler := sm.LoadAndSave(Auth(sm)(next))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called, "protected handler should run")
}
