package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions map[string]*services.Session

func (f fakeSessions) Current(ctx context.Context, profileID string) (*services.Session, error) {
	if s, ok := f[profileID]; ok {
		return s, nil
	}
	return nil, services.ErrNotLoggedIn
}

const knownProfile = "0b6c1a52-4d0e-4c64-9a3e-2f0d3c5b8e71"

func newTestRouter(sessions fakeSessions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := NewAuthMiddleware(sessions)

	r := gin.New()
	r.Use(RequestIDMiddleware(), ProfileMiddleware(false))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"profile": GetProfileID(c)})
	})
	r.GET("/private", auth.AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"token": GetToken(c), "role": GetUserRole(c)})
	})
	r.GET("/admin", auth.AuthRequired(), auth.AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestProfileMiddleware_IssuesProfile(t *testing.T) {
	r := newTestRouter(fakeSessions{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	require.Equal(t, http.StatusOK, w.Code)
	issued := w.Header().Get(ProfileHeader)
	assert.Len(t, issued, 36)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, ProfileCookieName, cookies[0].Name)
	assert.Equal(t, issued, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestProfileMiddleware_ReusesCookieOrHeader(t *testing.T) {
	r := newTestRouter(fakeSessions{})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: ProfileCookieName, Value: knownProfile})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"profile":"`+knownProfile+`"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(ProfileHeader, knownProfile)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, knownProfile, w.Header().Get(ProfileHeader))

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(ProfileHeader, "../../etc/passwd")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "../../etc/passwd", w.Header().Get(ProfileHeader))
}

func TestAuthMiddleware(t *testing.T) {
	r := newTestRouter(fakeSessions{
		knownProfile: {Token: "tok", Role: "ROLE_USER"},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(ProfileHeader, knownProfile)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"tok","role":"USER"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(ProfileHeader, knownProfile)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSMiddleware_DefaultsToLocalOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(nil))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
