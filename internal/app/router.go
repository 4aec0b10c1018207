package app

import (
	"dsa_tracker_backend/docs"
	"dsa_tracker_backend/internal/config"
	"dsa_tracker_backend/internal/middleware"
	"dsa_tracker_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	cookie := cfg.Session.CookieName
	requireAuth := middleware.AuthMiddleware(s.auth, cookie)
	tryAuth := middleware.TryAuthMiddleware(s.auth, cookie)

	api := router.Group("/api")

	// 1. 公共路由(无需登录)
	api.GET("/health", c.health.HealthCheck)
	api.POST("/register", c.auth.Register)
	api.POST("/login", c.auth.Login)

	// 2. 只读路由：可选认证，未登录时以演示账号身份浏览
	read := api.Group("")
	read.Use(tryAuth)
	{
		read.GET("/problems", c.problem.ListProblems)
		read.GET("/problems/:id", c.problem.GetProblem)
		read.GET("/attempts", c.attempt.ListAttempts)
		read.GET("/stats", c.stats.GetStats)
	}

	// 3. 需要授权的路由
	authGroup := api.Group("")
	authGroup.Use(requireAuth)
	{
		authGroup.POST("/logout", c.auth.Logout)
		authGroup.GET("/profile", c.auth.GetProfile)

		authGroup.POST("/problems", c.problem.CreateProblem)
		authGroup.DELETE("/problems/:id", c.problem.DeleteProblem)
		authGroup.POST("/attempts", c.attempt.CreateAttempt)
	}
}
