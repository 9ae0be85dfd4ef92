package middleware

import (
	"Palisade/internal/pkg/consts"
	"Palisade/internal/pkg/redis"
	"Palisade/internal/pkg/response"
	"Palisade/internal/pkg/security"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "missing or malformed token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "missing or malformed token")
			c.Abort()
			return
		}

		// 登出后的 token 进黑名单
		value, err := redis.GetValue(c.Request.Context(), consts.TokenBlacklistKey+signature)
		if err != nil {
			response.Fail(c, response.InternalServerError, "internal error")
			c.Abort()
			return
		}
		if value != "" {
			response.Fail(c, response.Unauthorized, "token invalid or expired")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "token invalid or expired")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("roles", claims.Roles)

		newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
