package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/royalty_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims middleware.Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(brand string) middleware.Claims {
	return middleware.Claims{
		BrandID: brand,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		tenant, _ := middleware.GetTenantIDFromContext(c)
		user, _ := middleware.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"tenant": tenant, "user": user})
	})
	r.GET("/", handlers...)
	return r
}

func serve(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(middleware.AuthMiddleware(testSecret))

	expired := validClaims("brand-1")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noBrand := validClaims("")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + signToken(t, validClaims("brand-1"), testSecret), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, validClaims("brand-1"), "other"), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, expired, testSecret), http.StatusUnauthorized},
		{"no brand claim", "Bearer " + signToken(t, noBrand, testSecret), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.header)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"tenant":"brand-1","user":"user-1"}`, w.Body.String())
			}
		})
	}
}

func TestRateLimit_PerTenant(t *testing.T) {
	lim, err := middleware.NewUploadLimiter("2-M")
	require.NoError(t, err)
	r := newRouter(middleware.AuthMiddleware(testSecret), middleware.RateLimit(lim))

	first := "Bearer " + signToken(t, validClaims("brand-1"), testSecret)
	second := "Bearer " + signToken(t, validClaims("brand-2"), testSecret)

	assert.Equal(t, http.StatusOK, serve(r, first).Code)
	assert.Equal(t, http.StatusOK, serve(r, first).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, first).Code)
	assert.Equal(t, http.StatusOK, serve(r, second).Code, "limits are kept per tenant")
}

func TestNewUploadLimiter_RejectsBadRate(t *testing.T) {
	_, err := middleware.NewUploadLimiter("thirty per minute")
	assert.Error(t, err)
}
