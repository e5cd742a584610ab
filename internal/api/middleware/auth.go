package middleware

import (
	"SocialPulse/internal/api/config"
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/redis"
	"SocialPulse/internal/pkg/response"
	"SocialPulse/internal/pkg/security"
	"context"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 校验外部签发的 JWT 并将 user_id 注入 Context
func AuthMiddleware(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		// 身份服务注销的令牌会写入黑名单
		if redis.Rdb != nil {
			value, err := redis.GetValue(c.Request.Context(), consts.TokenBlacklistKey+signature)
			if err != nil {
				log.ErrorContext(c.Request.Context(), "read token blacklist error", "err", err)
				response.Fail(c, response.InternalServerError, "未知错误")
				c.Abort()
				return
			}
			if value != "" {
				response.Fail(c, response.Unauthorized, "Token 无效或已过期")
				c.Abort()
				return
			}
		}

		claims, err := security.ValidateToken(tokenString, cfg.Secret, cfg.Issuer)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)

		newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
