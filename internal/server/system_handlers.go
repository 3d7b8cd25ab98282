package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Yuvraj13742/dodo-payments/internal/api"
)

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
