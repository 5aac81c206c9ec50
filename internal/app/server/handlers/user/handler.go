package user

import (
	"errors"

	"github.com/gin-gonic/gin"

	"dermascan/internal/app/domains/services/svuser"
	"dermascan/internal/app/pkg/errorx"
	"dermascan/internal/app/pkg/ginx"
	"dermascan/internal/app/pkg/logger"
)

// UserHandler 用户 HTTP 处理器
type UserHandler struct {
	userService *svuser.UserService
	log         logger.Logger
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userService *svuser.UserService, log logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

// respondError 按错误类型映射响应
func (h *UserHandler) respondError(c *gin.Context, err error) {
	var be *errorx.BusinessError
	if errors.As(err, &be) {
		ginx.Error(c, be.Code, be.Message)
		return
	}

	h.log.Errorf(c.Request.Context(), "user handler internal error: %v", err)
	ginx.InternalError(c, "Something went wrong!")
}
