package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Requests and replies are google.protobuf.Struct so field-constrained devices can post
// plain JSON-shaped payloads without a generated stub.

const (
	IngestServiceName = "prioribin.v1.IngestService"

	IngestService_UpdateFill_FullMethodName     = "/prioribin.v1.IngestService/UpdateFill"
	IngestService_Collect_FullMethodName        = "/prioribin.v1.IngestService/Collect"
	IngestService_ReportLocation_FullMethodName = "/prioribin.v1.IngestService/ReportLocation"
	IngestService_ListPriority_FullMethodName   = "/prioribin.v1.IngestService/ListPriority"
)

type IngestServiceServer interface {
	UpdateFill(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Collect(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ReportLocation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListPriority(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterIngestServiceServer(s grpc.ServiceRegistrar, srv IngestServiceServer) {
	s.RegisterService(&IngestService_ServiceDesc, srv)
}

type unaryMethod func(IngestServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IngestServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(IngestServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var IngestService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: IngestServiceName,
	HandlerType: (*IngestServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "UpdateFill",
			Handler:    unaryHandler(IngestService_UpdateFill_FullMethodName, IngestServiceServer.UpdateFill),
		},
		{
			MethodName: "Collect",
			Handler:    unaryHandler(IngestService_Collect_FullMethodName, IngestServiceServer.Collect),
		},
		{
			MethodName: "ReportLocation",
			Handler:    unaryHandler(IngestService_ReportLocation_FullMethodName, IngestServiceServer.ReportLocation),
		},
		{
			MethodName: "ListPriority",
			Handler:    unaryHandler(IngestService_ListPriority_FullMethodName, IngestServiceServer.ListPriority),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "prioribin/v1/ingest.proto",
}

type IngestServiceClient interface {
	UpdateFill(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Collect(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ReportLocation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListPriority(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type ingestServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewIngestServiceClient(cc grpc.ClientConnInterface) IngestServiceClient {
	return &ingestServiceClient{cc}
}

func (c *ingestServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ingestServiceClient) UpdateFill(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, IngestService_UpdateFill_FullMethodName, in, opts...)
}

func (c *ingestServiceClient) Collect(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, IngestService_Collect_FullMethodName, in, opts...)
}

func (c *ingestServiceClient) ReportLocation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, IngestService_ReportLocation_FullMethodName, in, opts...)
}

func (c *ingestServiceClient) ListPriority(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, IngestService_ListPriority_FullMethodName, in, opts...)
}
