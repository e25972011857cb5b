package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-stats-service/internal/api/handlers"
	"social-stats-service/internal/api/middleware"
	"social-stats-service/internal/config"
	"social-stats-service/internal/services"
	"social-stats-service/pkg/logger"
)

// NewRouter 创建API路由
func NewRouter(cfg *config.Config, statsService *services.StatsService, log logger.Logger) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())

	// 健康检查路由
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	statsHandler := handlers.NewStatsHandler(statsService, log)

	apiV1 := router.Group("/api/v1")
	if cfg.JWT.Secret != "" {
		apiV1.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	}

	stats := apiV1.Group("/social-stats")
	{
		stats.POST("", statsHandler.ResolveStats)
		stats.GET("/platforms", statsHandler.ListPlatforms)
		stats.GET("/history/:platform/:username", statsHandler.GetHistory)
		stats.GET("/:platform/:username", statsHandler.GetStats)
	}

	return router
}
