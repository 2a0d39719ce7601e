package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires middleware and routes around investigator.
func NewRouter(investigator Investigator, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(RecoveryMiddleware(logger))
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(logger))
	router.Use(CORSMiddleware())

	router.GET("/health", NewHealthHandler().Handle)
	router.GET("/ready", NewReadyHandler(investigator).Handle)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/investigations", NewInvestigateHandler(investigator, logger).Handle)
		v1.GET("/platforms", NewPlatformsHandler(investigator).Handle)
	}

	return router
}
