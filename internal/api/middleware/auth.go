package middleware

import (
	"Tieba/internal/pkg/consts"
	"Tieba/internal/pkg/redis"
	"Tieba/internal/pkg/response"
	"Tieba/internal/pkg/security"
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	errTokenMissing = errors.New("Token 缺失或格式错误")
	errTokenInvalid = errors.New("Token 无效或已过期")
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseClaims(c)
		if err != nil {
			if errors.Is(err, errTokenMissing) || errors.Is(err, errTokenInvalid) {
				response.Fail(c, response.Unauthorized, err.Error())
			} else {
				response.Fail(c, response.InternalServerError, "未知错误")
			}
			c.Abort()
			return
		}

		injectIdentity(c, claims)
		c.Next()
	}
}

// AuthOptionalMiddleware 可选鉴权：解析成功注入 UID，失败或缺失则 UID 为 0
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseClaims(c)
		if err != nil {
			c.Set("user_id", uint64(0))
			c.Next()
			return
		}

		injectIdentity(c, claims)
		c.Next()
	}
}

func parseClaims(c *gin.Context) (*security.UserClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, errTokenMissing
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	signature, err := security.ExtractSignature(tokenString)
	if err != nil {
		return nil, errTokenMissing
	}

	// 已注销的 Token 以签名为 key 进入黑名单
	value, err := redis.GetValue(c.Request.Context(), consts.TokenBlacklistKey+signature)
	if err != nil {
		return nil, err
	}
	if value != "" {
		return nil, errTokenInvalid
	}

	claims, err := security.ValidateToken(tokenString)
	if err != nil {
		return nil, errTokenInvalid
	}
	c.Set("token", tokenString)
	return claims, nil
}

func injectIdentity(c *gin.Context, claims *security.UserClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("roles", claims.Roles)

	newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
	c.Request = c.Request.WithContext(newCtx)
}
