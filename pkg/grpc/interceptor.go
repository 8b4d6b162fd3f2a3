package grpc

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/prioribin-service/pkg/common"
)

// RateLimitedMethod names the request field whose value picks the token bucket.
type RateLimitedMethod struct {
	FullMethod string
	KeyField   string
}

var DefaultRateLimitedMethods = []RateLimitedMethod{
	{FullMethod: IngestService_UpdateFill_FullMethodName, KeyField: "bin_id"},
	{FullMethod: IngestService_ReportLocation_FullMethodName, KeyField: "collector_name"},
}

func (s *IngestServer) CreateRateLimitInterceptor(targets []RateLimitedMethod) grpc.UnaryServerInterceptor {
	keyFields := common.Reducer(targets,
		func(m map[string]string, t RateLimitedMethod) map[string]string {
			m[t.FullMethod] = t.KeyField
			return m
		},
		map[string]string{},
	)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if field, ok := keyFields[info.FullMethod]; ok {
			if r, ok := req.(*structpb.Struct); ok {
				// requests without the key fall through to validation in the handler
				if key := strings.TrimSpace(r.GetFields()[field].GetStringValue()); key != "" {
					if !s.CheckLimiter(key) {
						return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
					}
				}
			}
		}

		return handler(ctx, req)
	}
}
