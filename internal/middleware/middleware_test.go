package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/bloglist-backend/internal/auth"
	"github.com/baharkarakas/bloglist-backend/internal/logger"
)

func echoClaims(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c := ClaimsFrom(r.Context()); c != nil {
			_, _ = w.Write([]byte(c.Username))
			return
		}
		_, _ = w.Write([]byte("anon"))
	})
}

func TestRequire(t *testing.T) {
	tm := auth.NewTokenManager("s", 0)
	tok, err := tm.Issue("u1", "root")
	require.NoError(t, err)
	h := NewAuthMiddleware(tm).Require(echoClaims(t))

	cases := []struct {
		header string
		status int
		body   string
	}{
		{"", http.StatusUnauthorized, "token missing or invalid"},
		{"Bearer garbage", http.StatusUnauthorized, "token missing or invalid"},
		{"Basic " + tok, http.StatusUnauthorized, "token missing or invalid"},
		{"Bearer " + tok, http.StatusOK, "root"},
		{"bearer " + tok, http.StatusOK, "root"},
		{"BEARER " + tok, http.StatusOK, "root"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tc.status, rec.Code, tc.header)
		assert.Contains(t, rec.Body.String(), tc.body, tc.header)
	}
}

func TestOptional(t *testing.T) {
	tm := auth.NewTokenManager("s", 0)
	tok, err := tm.Issue("u1", "root")
	require.NoError(t, err)
	h := NewAuthMiddleware(tm).Optional(echoClaims(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anon", rec.Body.String())

	req := httptest.NewRequest(http.MethodPut, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "root", rec.Body.String())

	req = httptest.NewRequest(http.MethodPut, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", seen)
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error","code":"internal_error"}`, rec.Body.String())
}

func TestRequestLoggerSkipsBodies(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("dev", &buf)
	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(`{"password":"hunter2"}`))
	req.Header.Set("Authorization", "Bearer secret-token")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "path=/api/login")
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "secret-token")
}
