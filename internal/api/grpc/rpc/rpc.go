// Package rpc declares the neoarcana.v1.Readings gRPC service. Messages are
// google.protobuf.Struct values whose fields mirror the JSON API.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "neoarcana.v1.Readings"

const (
	VerifyPosterFullMethodName      = "/neoarcana.v1.Readings/VerifyPoster"
	RegisterFullMethodName          = "/neoarcana.v1.Readings/Register"
	UpdatePreferencesFullMethodName = "/neoarcana.v1.Readings/UpdatePreferences"
	GetReadingFullMethodName        = "/neoarcana.v1.Readings/GetReading"
	ListHistoryFullMethodName       = "/neoarcana.v1.Readings/ListHistory"
)

// PublicMethods can be called without a session token.
var PublicMethods = []string{
	VerifyPosterFullMethodName,
	RegisterFullMethodName,
}

// ReadingsServer is the server API for the Readings service.
type ReadingsServer interface {
	VerifyPoster(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Register(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdatePreferences(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetReading(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterReadingsServer(s grpc.ServiceRegistrar, srv ReadingsServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type unaryMethod func(ReadingsServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(call unaryMethod, fullMethod string) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ReadingsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ReadingsServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc is the grpc.ServiceDesc for the Readings service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReadingsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "VerifyPoster", Handler: unaryHandler(ReadingsServer.VerifyPoster, VerifyPosterFullMethodName)},
		{MethodName: "Register", Handler: unaryHandler(ReadingsServer.Register, RegisterFullMethodName)},
		{MethodName: "UpdatePreferences", Handler: unaryHandler(ReadingsServer.UpdatePreferences, UpdatePreferencesFullMethodName)},
		{MethodName: "GetReading", Handler: unaryHandler(ReadingsServer.GetReading, GetReadingFullMethodName)},
		{MethodName: "ListHistory", Handler: unaryHandler(ReadingsServer.ListHistory, ListHistoryFullMethodName)},
	},
	Streams: []grpc.StreamDesc{},
}

// ReadingsClient is the client API for the Readings service.
type ReadingsClient struct {
	cc grpc.ClientConnInterface
}

func NewReadingsClient(cc grpc.ClientConnInterface) *ReadingsClient {
	return &ReadingsClient{cc: cc}
}

func (c *ReadingsClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ReadingsClient) VerifyPoster(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, VerifyPosterFullMethodName, in, opts...)
}

func (c *ReadingsClient) Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, RegisterFullMethodName, in, opts...)
}

func (c *ReadingsClient) UpdatePreferences(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, UpdatePreferencesFullMethodName, in, opts...)
}

func (c *ReadingsClient) GetReading(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetReadingFullMethodName, in, opts...)
}

func (c *ReadingsClient) ListHistory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListHistoryFullMethodName, in, opts...)
}
