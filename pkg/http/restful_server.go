package http

import (
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/prioribin-service/pkg/common"
	"liyu1981.xyz/prioribin-service/pkg/waste"
)

type RestfulServer struct {
	Server *gin.Engine
	Waste  *waste.Waste
	// RateLimiterStore throttles fill reports per bin and location pings per collector.
	// nil disables throttling.
	RateLimiterStore *waste.RateLimiterStore
	// Live serves /ws when set.
	Live           http.Handler
	ActiveWindow   time.Duration
	AllowedOrigins []string
}

func (rs *RestfulServer) logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameRestfulServer)
}

func (rs *RestfulServer) CheckLimiter(key string) bool {
	return rs.RateLimiterStore.Allow(key)
}

func (rs *RestfulServer) SetLimiter(key string, keyRate float64, keyBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(key, rate.Limit(keyRate), keyBurst)
}

func (rs *RestfulServer) activeWindow() time.Duration {
	if rs.ActiveWindow <= 0 {
		return waste.DefaultActiveWindow
	}
	return rs.ActiveWindow
}

func (rs *RestfulServer) corsMiddleware() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	if slices.Contains(rs.AllowedOrigins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = rs.AllowedOrigins
	}
	return cors.New(config)
}

// fail writes the status for a core error: 404 for a missing bin or collector, 400 for
// rejected input and 500 for everything else.
func (rs *RestfulServer) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, waste.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, waste.ErrMalformedInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		rs.logger().Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (rs *RestfulServer) Setup() {
	if len(rs.AllowedOrigins) > 0 {
		rs.Server.Use(rs.corsMiddleware())
	}

	rs.Server.GET("/healthz", rs.HealthCheck)
	if rs.Live != nil {
		rs.Server.GET("/ws", gin.WrapH(rs.Live))
	}

	api := rs.Server.Group("/api")

	bins := api.Group("/bins")
	{
		bins.POST("", rs.RegisterBin)
		bins.GET("", rs.ListBins)
		bins.GET("/priority", rs.ListPriorityBins)
		bins.GET("/:bin_id", rs.GetBin)
		bins.DELETE("/:bin_id", rs.RemoveBin)
		bins.POST("/:bin_id/fill", rs.UpdateFill)
		bins.POST("/:bin_id/collect", rs.CollectBin)
		bins.PUT("/:bin_id/location", rs.RelocateBin)
		bins.GET("/:bin_id/history", rs.GetHistory)
		bins.POST("/:bin_id/history", rs.PostNote)
	}

	collectors := api.Group("/collectors")
	{
		collectors.GET("/active", rs.ListActiveCollectors)
		collectors.POST("/:name/location", rs.ReportLocation)
		collectors.GET("/:name/dashboard", rs.GetDashboard)
	}

	api.POST("/limiters/:key", rs.PostLimiter)

	// routes kept for sensors and pages built against the first release
	api.POST("/update_bin", rs.LegacyUpdateBin)
	api.POST("/collect_bin/:bin_id", rs.LegacyCollectBin)
	api.GET("/get_bins", rs.ListBins)
}
