package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinichub/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuth map[string]models.Actor

func (s stubAuth) Authenticate(_ context.Context, token string) (models.Actor, error) {
	if token == "broken" {
		return models.Actor{}, errors.New("redis down")
	}
	a, ok := s[token]
	if !ok {
		return models.Actor{}, models.ErrUnauthorized
	}
	return a, nil
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		actor, _ := GetActor(c)
		c.String(http.StatusOK, actor.ID+":"+string(actor.Role))
	})
	r.GET("/", handlers...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	auth := stubAuth{"good": {ID: "u1", Role: models.RoleDoctor}}
	r := newRouter(JWTAuth(auth))

	w := do(r, "good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1:doctor", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "bad").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(r, "broken").Code)
}

func TestRequireRole(t *testing.T) {
	auth := stubAuth{
		"doc":   {ID: "d1", Role: models.RoleDoctor},
		"admin": {ID: "a1", Role: models.RoleAdmin},
	}
	r := newRouter(JWTAuth(auth), RequireRole(models.RoleAdmin))

	assert.Equal(t, http.StatusOK, do(r, "admin").Code)
	w := do(r, "doc")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))

	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, "").Code)
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	assert.Equal(t, "10.0.0.1", getClientIP(c))

	c.Request.Header.Set("X-Forwarded-For", "unknown, 10.0.0.3")
	assert.Equal(t, "10.0.0.3", getClientIP(c))

	c.Request.Header.Set("X-Forwarded-For", "garbage")
	c.Request.Header.Set("X-Real-IP", " 172.16.0.9 ")
	assert.Equal(t, "172.16.0.9", getClientIP(c))

	c.Request.Header.Del("X-Forwarded-For")
	c.Request.Header.Del("X-Real-IP")
	c.Request.RemoteAddr = "192.168.1.5:4321"
	assert.Equal(t, "192.168.1.5", getClientIP(c))
}
