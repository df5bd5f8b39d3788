package middleware

import (
	"Tieba/internal/pkg/consts"
	"Tieba/internal/pkg/redis"
	"Tieba/internal/pkg/security"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	Code int `json:"code"`
	Data struct {
		UserID uint64 `json:"user_id"`
	} `json:"data"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	redis.UseClient(client)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	whoami := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 200, "data": gin.H{"user_id": c.GetUint64("user_id")}})
	}
	r.GET("/strict", AuthMiddleware(), whoami)
	r.GET("/optional", AuthOptionalMiddleware(), whoami)
	r.GET("/admin", AuthMiddleware(), CheckRoles(security.RoleAdmin), whoami)
	return r
}

func call(t *testing.T, r *gin.Engine, path, token string) result {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var res result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(t)
	token, err := security.GenerateToken(5, []string{security.RoleUser})
	require.NoError(t, err)

	assert.Equal(t, 401, call(t, r, "/strict", "").Code)
	assert.Equal(t, 401, call(t, r, "/strict", "garbage").Code)

	res := call(t, r, "/strict", token)
	assert.Equal(t, 200, res.Code)
	assert.Equal(t, uint64(5), res.Data.UserID)

	res = call(t, r, "/optional", "")
	assert.Equal(t, 200, res.Code)
	assert.Zero(t, res.Data.UserID)

	assert.Equal(t, 403, call(t, r, "/admin", token).Code)
}

func TestAuthMiddleware_Blacklisted(t *testing.T) {
	r := newRouter(t)
	token, err := security.GenerateToken(5, []string{security.RoleUser, security.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, 200, call(t, r, "/admin", token).Code)

	sig, err := security.ExtractSignature(token)
	require.NoError(t, err)
	require.NoError(t, redis.SetValue(context.Background(), consts.TokenBlacklistKey+sig, true))

	assert.Equal(t, 401, call(t, r, "/strict", token).Code)
	assert.Zero(t, call(t, r, "/optional", token).Data.UserID)
}
