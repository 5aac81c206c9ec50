package user

import (
	"github.com/gin-gonic/gin"

	"dermascan/internal/app/domains/apimodel/request"
	"dermascan/internal/app/domains/apimodel/response"
	"dermascan/internal/app/pkg/ginx"
)

// Register 注册新用户
// POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	user, token, err := h.userService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.Created(c, response.AuthResponse{
		User:  response.FromUserEntity(user),
		Token: token,
	})
}
