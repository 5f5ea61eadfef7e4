package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/trahulprabhu38/major-project-sub000/docs"
	"github.com/trahulprabhu38/major-project-sub000/internal/config"
	"github.com/trahulprabhu38/major-project-sub000/internal/middleware"
	"github.com/trahulprabhu38/major-project-sub000/internal/model"
	"github.com/trahulprabhu38/major-project-sub000/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/me", c.auth.Me)

		analytics := authGroup.Group("/analytics")
		{
			analytics.GET("/weak-questions/:examIndex", c.analytics.WeakQuestions)
			analytics.GET("/recommendations/:examIndex", c.analytics.Recommendations)
			analytics.GET("/study-plan/:examIndex", c.analytics.StudyPlan)
		}

		feedback := authGroup.Group("/feedback")
		{
			feedback.POST("/vote", c.feedback.Vote)
			feedback.POST("/rating", c.feedback.Rate)
			feedback.POST("/completion", c.feedback.Complete)
		}
	}

	// 教师/管理员接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher, model.Admin))
	{
		admin.POST("/resources", c.content.CreateResource)
		admin.GET("/resources", c.content.ListResources)
		admin.POST("/resources/upload", c.content.UploadResource)
		admin.POST("/question-mappings", c.content.CreateMapping)
		admin.GET("/question-mappings/:examIndex", c.content.ListMappings)
		admin.POST("/marks", c.content.UploadMarks)
	}
}
