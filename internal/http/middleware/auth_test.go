// README: Tests for auth, rate limit and recovery middleware.
package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"voyage/internal/http/middleware"
	"voyage/internal/infra"
)

type stubVerifier struct {
	token *infra.CallerToken
	err   error
	raw   string
}

func (s *stubVerifier) VerifyIDToken(_ context.Context, raw string) (*infra.CallerToken, error) {
	s.raw = raw
	return s.token, s.err
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": middleware.CallerUID(c), "email": middleware.CallerEmail(c)})
	})
	return r
}

func get(r http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader(t *testing.T) {
	r := newTestRouter(middleware.Auth(&stubVerifier{token: &infra.CallerToken{UID: "user1"}}))
	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
}

func TestAuth_InvalidBearerPrefix(t *testing.T) {
	r := newTestRouter(middleware.Auth(&stubVerifier{token: &infra.CallerToken{UID: "user1"}}))
	assert.Equal(t, http.StatusUnauthorized, get(r, "Token sometoken").Code)
}

func TestAuth_VerifierError(t *testing.T) {
	r := newTestRouter(middleware.Auth(&stubVerifier{err: errors.New("bad token")}))
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer invalidtoken").Code)
}

func TestAuth_ValidToken(t *testing.T) {
	v := &stubVerifier{token: &infra.CallerToken{UID: "traveller123", Email: "t@example.com"}}
	r := newTestRouter(middleware.Auth(v))

	w := get(r, "Bearer validtoken")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":"traveller123","email":"t@example.com"}`, w.Body.String())
	assert.Equal(t, "validtoken", v.raw)
}

func TestAuth_DisabledUsesAnonymousCaller(t *testing.T) {
	r := newTestRouter(middleware.Auth(nil))
	w := get(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), middleware.AnonymousCaller)
}

func TestRateLimit_PerClient(t *testing.T) {
	r := newTestRouter(middleware.RateLimit(1, 2))

	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusOK, get(r, "").Code)
	w := get(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	other := httptest.NewRecorder()
	r.ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newTestRouter(middleware.RateLimit(0, 0))
	for n := 0; n < 5; n++ {
		assert.Equal(t, http.StatusOK, get(r, "").Code)
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
}
