package http

import (
	"net/http"

	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
)

func (rs *RestfulServer) ReportLocation(c *gin.Context) {
	name := trimmedParam(c, "name")

	if !rs.CheckLimiter(name) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req LocationRequest
	if err := locationRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	collector, err := rs.Waste.Tracker.ReportLocation(name, req.Lat, req.Lon)
	if err != nil {
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "collector": collector})
}

// GetDashboard counts as a visit: it creates the collector on first sight and marks it
// active.
func (rs *RestfulServer) GetDashboard(c *gin.Context) {
	dashboard, err := rs.Waste.CollectorDashboard(trimmedParam(c, "name"), rs.activeWindow())
	if err != nil {
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (rs *RestfulServer) ListActiveCollectors(c *gin.Context) {
	collectors, err := rs.Waste.Tracker.ListActive(rs.activeWindow(), rs.Waste.Clock())
	if err != nil {
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, collectors)
}
