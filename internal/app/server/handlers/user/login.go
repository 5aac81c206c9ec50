package user

import (
	"github.com/gin-gonic/gin"

	"dermascan/internal/app/domains/apimodel/request"
	"dermascan/internal/app/domains/apimodel/response"
	"dermascan/internal/app/pkg/ginx"
)

// Login 登录
// POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	user, token, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.Success(c, response.AuthResponse{
		User:  response.FromUserEntity(user),
		Token: token,
	})
}
