package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func capTestRouter(check func(c *gin.Context)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/probe", func(c *gin.Context) {
		check(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := capTestRouter(func(c *gin.Context) {})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := capTestRouter(func(c *gin.Context) {})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareWildcardCapability(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateStaffToken("alice", []string{"*"}, time.Hour)
	assert.NoError(t, err)

	anyCustomer := uuid.New()
	r := capTestRouter(func(c *gin.Context) {
		assert.True(t, CanEditCustomer(c, anyCustomer))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareScopedCapability(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	allowed := uuid.New()
	other := uuid.New()

	token, err := GenerateStaffToken("bob", []string{allowed.String()}, time.Hour)
	assert.NoError(t, err)

	r := capTestRouter(func(c *gin.Context) {
		assert.True(t, CanEditCustomer(c, allowed))
		assert.False(t, CanEditCustomer(c, other))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateStaffTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := GenerateStaffToken("alice", []string{"*"}, time.Hour)
	assert.Error(t, err)
}
