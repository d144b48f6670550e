package app

import (
	"studyquiz_backend/docs"
	"studyquiz_backend/internal/config"
	"studyquiz_backend/internal/middleware"
	"studyquiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	router.POST("/api/login", c.auth.Login)
	router.GET("/api/health", c.health.Health)

	// Everything else is scoped to the logged-in name.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.POST("/materials/summary", c.study.Summarize)

		authGroup.POST("/quizzes", c.study.GenerateQuiz)
		authGroup.POST("/quizzes/grade", c.study.Grade)
		authGroup.POST("/quizzes/retry", c.study.Retry)
		authGroup.POST("/quizzes/edit", c.study.Edit)

		authGroup.GET("/history", c.history.List)
		authGroup.PUT("/history/title", c.history.UpdateTitle)
		authGroup.POST("/history/archive", c.history.Archive)
		authGroup.POST("/history/restore", c.history.Restore)
		authGroup.DELETE("/history", c.history.Purge)
		authGroup.DELETE("/history/all", c.history.ClearAll)
	}
}
