package middleware

import (
	"strings"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserLoader 由 repository.UserRepository 实现
type UserLoader interface {
	FindByID(id uint) (*model.User, error)
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// resolveUser 解析令牌并加载用户，禁用账号视为无效身份
func resolveUser(c *gin.Context, cfg *config.Config, users UserLoader) *model.User {
	tokenString := extractToken(c)
	if tokenString == "" {
		return nil
	}

	claims, err := util.ParseJWT(tokenString, cfg.JWTSettings().Secret)
	if err != nil {
		return nil
	}

	user, err := users.FindByID(claims.UserID)
	if err != nil || !user.IsActive {
		return nil
	}
	return user
}

// AuthMiddleware 强制认证：缺失、无效、过期令牌或账号已禁用一律 401
func AuthMiddleware(cfg *config.Config, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := resolveUser(c, cfg, users)
		if user == nil {
			if extractToken(c) == "" {
				util.Unauthorized(c, "Not authorized, no token")
			} else {
				util.Unauthorized(c, "Not authorized, token failed")
			}
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// TryAuthMiddleware 可选认证：解析失败时继续以匿名身份处理请求
func TryAuthMiddleware(cfg *config.Config, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := resolveUser(c, cfg, users); user != nil {
			c.Set("user", user)
		}
		c.Next()
	}
}

// RoleMiddleware 角色门禁，需在 AuthMiddleware 之后使用
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c, "Not authorized, no token")
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c, "Access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
