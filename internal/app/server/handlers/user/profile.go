package user

import (
	"github.com/gin-gonic/gin"

	"dermascan/internal/app/domains/apimodel/response"
	"dermascan/internal/app/pkg/ginx"
	"dermascan/internal/app/server/middlewares"
)

// Profile 查询当前用户资料
// GET /api/v1/users/me
func (h *UserHandler) Profile(c *gin.Context) {
	requesterID, _, ok := middlewares.Requester(c)
	if !ok {
		ginx.Unauthorized(c, "Access denied. No token provided.")
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), requesterID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.Success(c, response.FromUserEntity(user))
}
