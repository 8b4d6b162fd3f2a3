package http

import (
	"net/http"
	"strings"

	"liyu1981.xyz/prioribin-service/pkg/models"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

type RegisterRequest struct {
	BinID string  `json:"bin_id" zog:"bin_id"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

var registerRequestSchema = z.Struct(z.Shape{
	"BinID": z.String().Trim().Min(1).Max(50).Required(),
	"Lat":   z.Float64().Required(),
	"Lon":   z.Float64().Required(),
})

func (rs *RestfulServer) RegisterBin(c *gin.Context) {
	var req RegisterRequest
	if err := registerRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	bin, created, err := rs.Waste.Registry.Register(req.BinID, req.Lat, req.Lon)
	if err != nil {
		rs.fail(c, err)
		return
	}

	if created {
		c.JSON(http.StatusCreated, bin)
	} else {
		c.JSON(http.StatusOK, bin)
	}
}

func (rs *RestfulServer) ListBins(c *gin.Context) {
	bins, err := rs.Waste.Registry.ListAll()
	if err != nil {
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bins)
}

func (rs *RestfulServer) ListPriorityBins(c *gin.Context) {
	bins, err := rs.Waste.Registry.ListPriority()
	if err != nil {
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bins)
}

func (rs *RestfulServer) GetBin(c *gin.Context) {
	bin, err := rs.Waste.Registry.GetBin(c.Param("bin_id"))
	if err != nil {
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bin)
}

// RemoveBin answers 204 whether or not the bin existed.
func (rs *RestfulServer) RemoveBin(c *gin.Context) {
	binID := c.Param("bin_id")

	if err := rs.Waste.Registry.Remove(binID); err != nil && !isNotFound(err) {
		rs.fail(c, err)
		return
	}
	rs.RateLimiterStore.Forget(binID)

	c.Status(http.StatusNoContent)
}

type FillRequest struct {
	FillLevel int    `json:"fill_level" zog:"fill_level"`
	Source    string `json:"source"`
}

var fillRequestSchema = z.Struct(z.Shape{
	"FillLevel": z.Int().Required(),
	"Source":    z.String().Trim(),
})

func (rs *RestfulServer) UpdateFill(c *gin.Context) {
	binID := c.Param("bin_id")

	if !rs.CheckLimiter(binID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req FillRequest
	if err := fillRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	source := models.UpdateSourceManual
	if req.Source != "" {
		source = models.UpdateSource(req.Source)
	}

	status, err := rs.Waste.Registry.UpdateFill(binID, req.FillLevel, source)
	if err != nil {
		rs.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bin_id": binID, "status": status})
}

type CollectRequest struct {
	CollectorName string `json:"collector_name" zog:"collector_name"`
}

var collectRequestSchema = z.Struct(z.Shape{
	"CollectorName": z.String().Trim().Max(100),
})

// parseCollectRequest accepts an empty body: the collector then defaults to Unknown.
func parseCollectRequest(c *gin.Context) (*CollectRequest, z.ZogIssueMap) {
	var req CollectRequest
	if c.Request.ContentLength == 0 {
		return &req, nil
	}
	if err := collectRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (rs *RestfulServer) CollectBin(c *gin.Context) {
	req, issues := parseCollectRequest(c)
	if issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": issues})
		return
	}

	bin, err := rs.Waste.Registry.Collect(c.Param("bin_id"), req.CollectorName)
	if err != nil {
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bin)
}

type LocationRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

var locationRequestSchema = z.Struct(z.Shape{
	"Lat": z.Float64().Required(),
	"Lon": z.Float64().Required(),
})

func (rs *RestfulServer) RelocateBin(c *gin.Context) {
	var req LocationRequest
	if err := locationRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	bin, err := rs.Waste.Registry.Relocate(c.Param("bin_id"), req.Lat, req.Lon)
	if err != nil {
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bin)
}

func (rs *RestfulServer) GetHistory(c *gin.Context) {
	events, err := rs.Waste.EventLog.ListFor(c.Param("bin_id"))
	if err != nil {
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

type NoteRequest struct {
	EventType     string `json:"event_type" zog:"event_type"`
	Description   string `json:"description"`
	CollectorName string `json:"collector_name" zog:"collector_name"`
}

var noteRequestSchema = z.Struct(z.Shape{
	"EventType":     z.String().Trim().Max(50),
	"Description":   z.String().Trim().Min(1).Required(),
	"CollectorName": z.String().Trim().Max(100),
})

func (rs *RestfulServer) PostNote(c *gin.Context) {
	var req NoteRequest
	if err := noteRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	event := &models.HistoryEvent{
		BinID:       c.Param("bin_id"),
		EventType:   models.EventType(req.EventType),
		Description: req.Description,
	}
	if req.CollectorName != "" {
		event.CollectorName = &req.CollectorName
	}

	if err := rs.Waste.EventLog.Append(event); err != nil {
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"Rate":  z.Float64().GTE(0).Required(),
	"Burst": z.Int().GTE(0).Required(),
})

// PostLimiter overrides the limiter of one key: a bin id or a collector name.
func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	key := c.Param("key")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(key, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func trimmedParam(c *gin.Context, name string) string {
	return strings.TrimSpace(c.Param(name))
}
