package api

import (
	"housing/server/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter wires middleware and routes around the handler
func NewRouter(handler *Handler, m *metrics.Metrics, allowedOrigins []string, logger *logrus.Logger) *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	router.Use(
		Recovery(logger),
		RequestLogger(logger),
		RequestMetrics(m),
		CORS(allowedOrigins),
	)

	SetupRoutes(router, handler, m)
	return router
}

func SetupRoutes(router *gin.Engine, handler *Handler, m *metrics.Metrics) {
	router.GET("/", handler.Index)
	router.POST("/predict/:mode", handler.Predict)

	router.GET("/health", handler.Health)
	router.GET("/models", handler.ListModels)
	router.GET("/options", handler.Options)
	router.GET("/metrics", gin.WrapH(m.Handler()))
}
