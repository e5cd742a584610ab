package middleware

import (
	"SocialPulse/internal/api/config"
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/redis"
	"SocialPulse/internal/pkg/security"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = config.JWTConfig{Secret: "test-secret", Issuer: "identity"}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	prev := redis.Rdb
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = redis.Rdb.Close()
		redis.Rdb = prev
		mr.Close()
	})
	return mr
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(testJWT))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 200, "user_id": c.GetUint64("user_id")})
	})
	return r
}

func call(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	setupMiniredis(t)
	token, err := security.GenerateToken(42, testJWT.Secret, testJWT.Issuer, time.Hour)
	require.NoError(t, err)

	w := call(newAuthRouter(), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestAuthMiddleware_Missing(t *testing.T) {
	setupMiniredis(t)
	w := call(newAuthRouter(), "")
	assert.Contains(t, w.Body.String(), `"code":401`)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	setupMiniredis(t)
	token, err := security.GenerateToken(42, "other-secret", testJWT.Issuer, time.Hour)
	require.NoError(t, err)

	w := call(newAuthRouter(), token)
	assert.Contains(t, w.Body.String(), `"code":401`)
}

func TestAuthMiddleware_Blacklisted(t *testing.T) {
	mr := setupMiniredis(t)
	token, err := security.GenerateToken(42, testJWT.Secret, testJWT.Issuer, time.Hour)
	require.NoError(t, err)

	sig := token[strings.LastIndex(token, ".")+1:]
	require.NoError(t, mr.Set(consts.TokenBlacklistKey+sig, "1"))

	w := call(newAuthRouter(), token)
	assert.Contains(t, w.Body.String(), `"code":401`)
	assert.NotContains(t, w.Body.String(), `"user_id"`)
}
