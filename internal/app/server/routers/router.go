package routers

import (
	"github.com/gin-gonic/gin"

	"dermascan/internal/app/pkg/authtoken"
	"dermascan/internal/app/pkg/logger"
	"dermascan/internal/app/server/handlers/scan"
	"dermascan/internal/app/server/handlers/user"
	"dermascan/internal/app/server/middlewares"
)

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(
	scanHandler *scan.ScanHandler,
	userHandler *user.UserHandler,
	tokens *authtoken.Manager,
	log logger.Logger,
	uploadsDir string,
) *gin.Engine {
	r := gin.New()

	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.ErrorHandler())

	// 上传体积上限略高于业务限制，精确校验在服务层完成
	r.MaxMultipartMemory = 8 << 20

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "dermascan",
			"message": "Service is running",
		})
	})

	// 图片静态服务，前端通过 image_path 拼接访问
	r.Static("/uploads", uploadsDir)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
		}

		users := v1.Group("/users")
		users.Use(middlewares.Auth(tokens))
		{
			users.GET("/me", userHandler.Profile)
		}

		scans := v1.Group("/scans")
		scans.Use(middlewares.Auth(tokens))
		{
			scans.POST("/analyze", scanHandler.Analyze)
			scans.GET("/history", scanHandler.History)
			scans.GET("/:id", scanHandler.Get)
			scans.DELETE("/:id", scanHandler.Delete)
			scans.PUT("/:id/notes", scanHandler.UpdateNotes)
		}
	}

	return r
}
