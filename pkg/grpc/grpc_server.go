package grpc

import (
	"liyu1981.xyz/prioribin-service/pkg/waste"
)

type IngestServer struct {
	Waste            *waste.Waste
	RateLimiterStore *waste.RateLimiterStore
}

func (s *IngestServer) CheckLimiter(key string) bool {
	return s.RateLimiterStore.Allow(key)
}

var _ IngestServiceServer = (*IngestServer)(nil)
