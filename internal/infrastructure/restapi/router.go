package restapi

import (
	"net/http"
	"time"

	"deploy_config/internal/config"
	"deploy_config/internal/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter configures and returns the gin engine.
func SetupRouter(handler *ConfigHandler, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(zapLoggerMiddleware(logger.Named("http")))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/config", handler.GetConfigHandler)
		v1.GET("/networks", handler.ListNetworksHandler)
		v1.GET("/networks/:name", handler.GetNetworkHandler)
		v1.GET("/networks/:name/probe", handler.ProbeNetworkHandler)
		v1.GET("/probe", handler.ProbeAllHandler)
		v1.GET("/accounts", handler.AccountsHandler)
		v1.GET("/explorers", handler.ExplorersHandler)
	}

	return router
}

// zapLoggerMiddleware logs each request once it completes.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("clientIP", c.ClientIP()),
		)
	}
}
