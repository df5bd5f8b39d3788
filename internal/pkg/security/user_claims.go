package security

import (
	"Tieba/internal/api/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

const (
	defaultJWTSecret     string = "Tieba"
	defaultJWTExpiration        = time.Hour * 24
	defaultJWTIssuer            = "Tieba"
)

// UserClaims 定义了我们 Token 中需要包含的业务信息
type UserClaims struct {
	UserID uint64   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	if config.Cfg != nil && config.Cfg.JWT.Secret != "" {
		return []byte(config.Cfg.JWT.Secret)
	}
	return []byte(defaultJWTSecret)
}

func jwtExpiration() time.Duration {
	if config.Cfg != nil && config.Cfg.JWT.ExpireHour > 0 {
		return time.Duration(config.Cfg.JWT.ExpireHour) * time.Hour
	}
	return defaultJWTExpiration
}

func jwtIssuer() string {
	if config.Cfg != nil && config.Cfg.JWT.Issuer != "" {
		return config.Cfg.JWT.Issuer
	}
	return defaultJWTIssuer
}
