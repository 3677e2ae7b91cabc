package app

import (
	"srmlab_backend/docs"
	"srmlab_backend/internal/config"
	"srmlab_backend/internal/middleware"
	"srmlab_backend/internal/model"
	"srmlab_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// Readable by both roles
		authGroup.GET("/questions", c.question.GetBySubject)
		authGroup.GET("/tests/available", c.test.ListAvailable)
		authGroup.GET("/tests/:id", c.test.Get)

		teacher := authGroup.Group("/teacher")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.POST("/questions", c.question.Create)
			teacher.PUT("/questions/:id", c.question.Update)
			teacher.DELETE("/questions/:id", c.question.Delete)
			teacher.POST("/questions/:id/image", c.question.UploadImage)

			teacher.POST("/tests", c.test.Create)
			teacher.GET("/tests", c.test.ListOwn)
			teacher.PATCH("/tests/:id/status", c.test.SetStatus)
			teacher.GET("/tests/:id/results", c.result.ListByTest)
		}

		student := authGroup.Group("")
		student.Use(middleware.RoleMiddleware(model.Student))
		{
			student.POST("/tests/:id/submit", c.result.Submit)
			student.GET("/student/results", c.result.ListOwn)
		}
	}
}
