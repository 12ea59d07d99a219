package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "ipcheck.v1.IPCheckService"

// IPCheckServer is the server API for the IPCheckService service.
// Requests and responses are google.protobuf.Struct messages.
type IPCheckServer interface {
	OpenSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Lookup(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Compare(context.Context, *structpb.Struct) (*structpb.Struct, error)
	History(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes IPCheckService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IPCheckServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "OpenSession", Handler: unaryHandler("OpenSession", IPCheckServer.OpenSession)},
		{MethodName: "EndSession", Handler: unaryHandler("EndSession", IPCheckServer.EndSession)},
		{MethodName: "Lookup", Handler: unaryHandler("Lookup", IPCheckServer.Lookup)},
		{MethodName: "Compare", Handler: unaryHandler("Compare", IPCheckServer.Compare)},
		{MethodName: "History", Handler: unaryHandler("History", IPCheckServer.History)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ipcheck/v1/ipcheck.proto",
}

// Register adds srv to s as the IPCheckService implementation.
func Register(s grpc.ServiceRegistrar, srv IPCheckServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// FullMethod returns the invoke path of a method, e.g. "/ipcheck.v1.IPCheckService/Lookup".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type unaryMethod func(IPCheckServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryMethod) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	fullMethod := FullMethod(method)
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IPCheckServer), ctx, in)
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(IPCheckServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}, handler)
	}
}
