package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owaies/QuizApp/internal/domain/entity"
	"github.com/owaies/QuizApp/pkg/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWT(t *testing.T) *auth.JWTService {
	t.Helper()
	s, err := auth.NewJWTService(testSecret, time.Hour, "quizapp")
	require.NoError(t, err)
	return s
}

func tokenFor(t *testing.T, s *auth.JWTService, id uint, role string) string {
	t.Helper()
	token, err := s.GenerateToken(&entity.User{ID: id, Username: "u", Role: role})
	require.NoError(t, err)
	return token
}

func perform(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	jwtService := newJWT(t)
	m := NewAuthMiddleware(jwtService)

	r := gin.New()
	echo := func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "userId": identity.UserID})
	}
	r.GET("/protected", m.RequireAuth(), echo)
	r.GET("/admin", m.RequireAuth(), m.AdminOnly(), echo)
	r.GET("/optional", m.OptionalAuth(), echo)
	return r, jwtService
}

func TestRequireAuth(t *testing.T) {
	r, jwtService := newAuthRouter(t)

	w := perform(r, http.MethodGet, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/protected", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/protected", tokenFor(t, jwtService, 7, entity.RoleUser))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":true,"userId":7}`, w.Body.String())
}

func TestRequireAuth_BadScheme(t *testing.T) {
	r, jwtService := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic "+tokenFor(t, jwtService, 1, entity.RoleUser))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnly(t *testing.T) {
	r, jwtService := newAuthRouter(t)

	w := perform(r, http.MethodGet, "/admin", tokenFor(t, jwtService, 2, entity.RoleUser))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Forbidden"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/admin", tokenFor(t, jwtService, 1, entity.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	r, jwtService := newAuthRouter(t)

	w := perform(r, http.MethodGet, "/optional", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false,"userId":0}`, w.Body.String())

	w = perform(r, http.MethodGet, "/optional", "broken.token.value")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false,"userId":0}`, w.Body.String())

	w = perform(r, http.MethodGet, "/optional", tokenFor(t, jwtService, 5, entity.RoleUser))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":true,"userId":5}`, w.Body.String())
}

func TestExtractUintParam(t *testing.T) {
	r := gin.New()
	r.GET("/items/:id", ExtractUintParam("id", "itemID"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUintParam(c, "itemID")})
	})

	w := perform(r, http.MethodGet, "/items/12", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":12}`, w.Body.String())

	for _, bad := range []string{"abc", "0", "-1"} {
		w = perform(r, http.MethodGet, "/items/"+bad, "")
		assert.Equal(t, http.StatusNotFound, w.Code, bad)
	}
}

func TestNoCacheAndRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), NoCache(), RequestLogger(), Metrics())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := perform(r, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store, no-cache, must-revalidate, private", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get(RequestIDHeader))
}

func TestRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRateLimiter(client)
	r := gin.New()
	r.POST("/api/login", limiter.Limit(AuthRateLimitConfig(2, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := perform(r, http.MethodPost, "/api/login", "")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := perform(r, http.MethodPost, "/api/login", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// После окна счетчик сбрасывается
	mr.FastForward(time.Minute + time.Second)
	w = perform(r, http.MethodPost, "/api/login", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_DisabledWithoutRedis(t *testing.T) {
	limiter := NewRateLimiter(nil)
	r := gin.New()
	r.POST("/api/signup", limiter.Limit(AuthRateLimitConfig(1, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		w := perform(r, http.MethodPost, "/api/signup", "")
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_FailOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	limiter := NewRateLimiter(client)
	r := gin.New()
	r.POST("/api/login", limiter.Limit(AuthRateLimitConfig(1, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := perform(r, http.MethodPost, "/api/login", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
