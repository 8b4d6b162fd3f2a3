package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/prioribin-service/pkg/common"
	"liyu1981.xyz/prioribin-service/pkg/models"
	"liyu1981.xyz/prioribin-service/pkg/waste"
)

func grpcLogger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameGrpcServer)
}

func reply(success bool, message string, extra map[string]any) (*structpb.Struct, error) {
	fields := map[string]any{
		"success": success,
		"message": message,
	}
	for k, v := range extra {
		fields[k] = v
	}
	return structpb.NewStruct(fields)
}

func ok(extra map[string]any) (*structpb.Struct, error) {
	return reply(true, "OK", extra)
}

func invalid(issues any) (*structpb.Struct, error) {
	return reply(false, fmt.Sprintf("validation error: %v", issues), nil)
}

// fail maps core errors: rejected input stays an in-band failure, a missing bin or
// collector is codes.NotFound and anything else codes.Internal.
func fail(method string, err error) (*structpb.Struct, error) {
	switch {
	case errors.Is(err, waste.ErrMalformedInput):
		return reply(false, err.Error(), nil)
	case errors.Is(err, waste.ErrNotFound):
		return nil, status.Error(codes.NotFound, err.Error())
	default:
		grpcLogger().Error("Request failed", zap.String("method", method), zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
}

func binToValue(bin models.Bin) any {
	return map[string]any{
		"bin_id":       bin.BinID,
		"lat":          bin.Lat,
		"lon":          bin.Lon,
		"fill_level":   bin.FillLevel,
		"status":       string(bin.Status),
		"last_updated": bin.LastUpdated.UTC().Format(time.RFC3339),
	}
}

type fillMessage struct {
	BinID     string `zog:"bin_id"`
	FillLevel int    `zog:"fill_level"`
	Source    string `zog:"source"`
}

var fillMessageSchema = z.Struct(z.Shape{
	"BinID":     z.String().Trim().Min(1).Required(),
	"FillLevel": z.Int().Required(),
	"Source":    z.String().Trim(),
})

// UpdateFill defaults the source to Sensor: this service is the device ingest path.
func (s *IngestServer) UpdateFill(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var msg fillMessage
	if err := fillMessageSchema.Parse(req.AsMap(), &msg); err != nil {
		return invalid(err)
	}

	source := models.UpdateSourceSensor
	if msg.Source != "" {
		source = models.UpdateSource(msg.Source)
	}

	st, err := s.Waste.Registry.UpdateFill(msg.BinID, msg.FillLevel, source)
	if err != nil {
		return fail("UpdateFill", err)
	}

	return ok(map[string]any{"status": string(st)})
}

type collectMessage struct {
	BinID         string `zog:"bin_id"`
	CollectorName string `zog:"collector_name"`
}

var collectMessageSchema = z.Struct(z.Shape{
	"BinID":         z.String().Trim().Min(1).Required(),
	"CollectorName": z.String().Trim().Max(100),
})

func (s *IngestServer) Collect(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var msg collectMessage
	if err := collectMessageSchema.Parse(req.AsMap(), &msg); err != nil {
		return invalid(err)
	}

	if _, err := s.Waste.Registry.Collect(msg.BinID, msg.CollectorName); err != nil {
		return fail("Collect", err)
	}

	return ok(nil)
}

type locationMessage struct {
	CollectorName string  `zog:"collector_name"`
	Lat           float64 `zog:"lat"`
	Lon           float64 `zog:"lon"`
}

var locationMessageSchema = z.Struct(z.Shape{
	"CollectorName": z.String().Trim().Min(1).Required(),
	"Lat":           z.Float64().Required(),
	"Lon":           z.Float64().Required(),
})

func (s *IngestServer) ReportLocation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var msg locationMessage
	if err := locationMessageSchema.Parse(req.AsMap(), &msg); err != nil {
		return invalid(err)
	}

	if _, err := s.Waste.Tracker.ReportLocation(msg.CollectorName, msg.Lat, msg.Lon); err != nil {
		return fail("ReportLocation", err)
	}

	return ok(nil)
}

func (s *IngestServer) ListPriority(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	bins, err := s.Waste.Registry.ListPriority()
	if err != nil {
		return fail("ListPriority", err)
	}

	return ok(map[string]any{"bins": common.Mapper(bins, binToValue)})
}
