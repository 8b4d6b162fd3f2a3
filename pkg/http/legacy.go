package http

import (
	"errors"
	"net/http"

	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	"liyu1981.xyz/prioribin-service/pkg/models"
	"liyu1981.xyz/prioribin-service/pkg/waste"

	z "github.com/Oudwins/zog"
)

type LegacyUpdateRequest struct {
	BinID     string `json:"bin_id" zog:"bin_id"`
	FillLevel int    `json:"fill_level" zog:"fill_level"`
}

var legacyUpdateRequestSchema = z.Struct(z.Shape{
	"BinID":     z.String().Trim().Min(1).Required(),
	"FillLevel": z.Int().Required(),
})

func isNotFound(err error) bool {
	return errors.Is(err, waste.ErrNotFound)
}

// LegacyUpdateBin is the sensor endpoint of the first firmware: the bin id travels in the
// body and every report counts as a Sensor reading.
func (rs *RestfulServer) LegacyUpdateBin(c *gin.Context) {
	var req LegacyUpdateRequest
	if err := legacyUpdateRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if !rs.CheckLimiter(req.BinID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	status, err := rs.Waste.Registry.UpdateFill(req.BinID, req.FillLevel, models.UpdateSourceSensor)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bin not found"})
			return
		}
		rs.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Data Updated", "priority": status})
}

func (rs *RestfulServer) LegacyCollectBin(c *gin.Context) {
	req, issues := parseCollectRequest(c)
	if issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": issues})
		return
	}

	if _, err := rs.Waste.Registry.Collect(c.Param("bin_id"), req.CollectorName); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"success": false})
			return
		}
		rs.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
