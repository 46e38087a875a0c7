package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/gearstore/internal/domain/user"
	"github.com/xiebiao/gearstore/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/gearstore/pkg/errors"
	"github.com/xiebiao/gearstore/pkg/jwt"
	"github.com/xiebiao/gearstore/pkg/response"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 检查Token黑名单（已登出的Token拒绝）
// 3. 验证Token有效性，将用户信息注入Context
// 4. 管理端接口在认证之上叠加RequireRole做角色校验
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RequireAuth 要求登录
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token（格式：Authorization: Bearer <token>）
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorWithCode(c, apperrors.ErrCodeUnauthorized, "请先登录")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidToken, "Token格式错误")
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 2. 检查Token黑名单（用户已登出或Token被强制失效）
		isBlacklisted, err := m.sessionStore.IsBlacklisted(c.Request.Context(), tokenString)
		if err != nil {
			response.ErrorWithCode(c, apperrors.ErrCodeInternal, "验证Token失败")
			c.Abort()
			return
		}
		if isBlacklisted {
			response.ErrorWithCode(c, apperrors.ErrCodeTokenExpired, "Token已失效，请重新登录")
			c.Abort()
			return
		}

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err) // 自动处理ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		// 4. 将用户信息注入Context，供后续Handler使用
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("nickname", claims.Nickname)
		c.Set("role", claims.Role)
		c.Set("access_token", tokenString)

		c.Next()
	}
}

// RequireRole 要求指定角色（必须在RequireAuth之后使用）
//
//	admin := v1.Group("/admin")
//	admin.Use(auth.RequireAuth(), auth.RequireRole(user.RoleAdmin))
func (m *AuthMiddleware) RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != role.String() {
			response.ErrorWithCode(c, apperrors.ErrCodeForbidden, "无权限访问")
			c.Abort()
			return
		}
		c.Next()
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 从Context获取当前登录用户ID
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get("user_id"); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetEmail 从Context获取当前登录用户邮箱
func GetEmail(c *gin.Context) string {
	if email, exists := c.Get("email"); exists {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

// GetRole 从Context获取当前登录用户角色
func GetRole(c *gin.Context) string {
	if role, exists := c.Get("role"); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}

// GetAccessToken 从Context获取当前请求的Access Token（登出时用）
func GetAccessToken(c *gin.Context) string {
	if token, exists := c.Get("access_token"); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}

// MustGetUserID 从Context获取用户ID（如果不存在则panic）
// 说明：用于已经通过RequireAuth中间件的Handler
func MustGetUserID(c *gin.Context) uint {
	userID := GetUserID(c)
	if userID == 0 {
		panic("user_id not found in context")
	}
	return userID
}
