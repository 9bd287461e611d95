package middleware

import (
	"net/http"
	"strings"
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/domain/services"
	"walink-crm-service/internal/error/response"
	"walink-crm-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionCookieName 会话Cookie名
const SessionCookieName = "walink_session"

// SessionCookieMaxAge 会话Cookie有效期（秒），与令牌有效期一致
const SessionCookieMaxAge = 7 * 24 * 60 * 60

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config, db *gorm.DB) {
	jwtService = services.NewJWTService(cfg, db)
}

// SetSessionCookie 写入HTTP-only会话Cookie
func SetSessionCookie(c *gin.Context, cfg *config.Config, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, SessionCookieMaxAge, "/", "", cfg.IsProduction(), true)
}

// ClearSessionCookie 清除会话Cookie
func ClearSessionCookie(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", cfg.IsProduction(), true)
}

// extractToken 从Cookie或Authorization头提取令牌
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return ""
}

// Authentication 通用认证中间件
// 缺失、过期、篡改、格式错误的令牌一律401，调用方无法区分原因
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil || claims == nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		// 存储声明到上下文
		c.Set("adminID", claims.AdminID)
		c.Set("tier", claims.Tier)
		c.Set("claims", claims)
		c.Next()
	}
}

// RequireSuperAdmin 超级管理员权限中间件，排在 Authentication 之后
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tier, exists := c.Get("tier")
		if !exists || tier != models.TierSuperAdmin {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentScope 从上下文还原操作者范围
func CurrentScope(c *gin.Context) services.Scope {
	adminID, _ := c.Get("adminID")
	tier, _ := c.Get("tier")

	scope := services.Scope{}
	if id, ok := adminID.(uint); ok {
		scope.AdminID = id
	}
	if t, ok := tier.(string); ok {
		scope.Tier = t
	}
	return scope
}
