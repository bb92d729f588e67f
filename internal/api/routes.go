package api

import (
	"github.com/gin-gonic/gin"

	"devotional/internal/domain"
	"devotional/internal/metrics"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, handler *Handler, m *metrics.Metrics) {
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	api := router.Group("/api")
	for _, kind := range domain.Kinds {
		group := api.Group("/" + kind.String())
		group.GET("", handler.List(kind))
		group.GET("/:slug", handler.Get(kind))

		if kind == domain.KindSaints {
			group.GET("/search/local", handler.SearchSaints)
		} else {
			group.GET("/search/local", handler.Search(kind))
		}
	}
}
