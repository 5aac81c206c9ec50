package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"dermascan/internal/app/pkg/authtoken"
	"dermascan/internal/app/pkg/ginx"
)

// Context 键
const (
	ctxKeyUserID   = "user_id"
	ctxKeyUserRole = "user_role"
)

// Auth JWT 鉴权中间件
// 校验 Bearer 令牌并把用户ID/角色写入请求上下文；
// 核心业务层不接触令牌，只接收显式的 requesterID/requesterRole 参数
func Auth(tokens *authtoken.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			ginx.Unauthorized(c, "Access denied. No token provided.")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.Verify(tokenString)
		if err != nil {
			if err == authtoken.ErrTokenExpired {
				ginx.Unauthorized(c, "Token expired")
			} else {
				ginx.Unauthorized(c, "Invalid token")
			}
			c.Abort()
			return
		}

		c.Set(ctxKeyUserID, claims.UserID)
		c.Set(ctxKeyUserRole, claims.Role)

		c.Next()
	}
}

// Requester 从请求上下文取出鉴权后的用户ID和角色
func Requester(c *gin.Context) (int64, string, bool) {
	userID, ok := c.Get(ctxKeyUserID)
	if !ok {
		return 0, "", false
	}
	role, ok := c.Get(ctxKeyUserRole)
	if !ok {
		return 0, "", false
	}

	id, okID := userID.(int64)
	roleStr, okRole := role.(string)
	if !okID || !okRole || id <= 0 {
		return 0, "", false
	}

	return id, roleStr, true
}
