package app

import (
	"learnpath_backend/docs"
	"learnpath_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 知识路径
		paths := api.Group("/paths")
		{
			paths.POST("/generate", c.path.Generate)
			paths.GET("", c.path.List)
			paths.GET("/:id", c.path.Get)
			paths.DELETE("/:id", c.path.Delete)
		}

		// 资源校验与质量过滤
		resources := api.Group("/resources")
		{
			resources.POST("/verify", c.verification.Verify)
			resources.POST("/filter", c.verification.Filter)
		}

		// 视频字幕
		api.GET("/videos/:videoId/transcript", c.transcript.Get)

		// 学习指南导出
		api.POST("/export", c.export.Export)
	}
}
