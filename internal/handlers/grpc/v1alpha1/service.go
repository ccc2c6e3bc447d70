// Package v1alpha1 exposes the lookup service over gRPC. Messages are
// google.protobuf.Struct values so no generated code is needed.
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "pokedex.api.v1alpha1.LookupService"

// Full method names
const (
	LookupServiceCreateSessionFullMethodName = "/" + ServiceName + "/CreateSession"
	LookupServiceLoadDefaultFullMethodName   = "/" + ServiceName + "/LoadDefault"
	LookupServiceSearchFullMethodName        = "/" + ServiceName + "/Search"
	LookupServiceGetSessionFullMethodName    = "/" + ServiceName + "/GetSession"
	LookupServiceGetPokemonFullMethodName    = "/" + ServiceName + "/GetPokemon"
)

// LookupServiceServer is the server API for the lookup service
type LookupServiceServer interface {
	CreateSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LoadDefault(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Search(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPokemon(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(LookupServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LookupServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LookupServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// LookupServiceDesc is the grpc.ServiceDesc for the lookup service
var LookupServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LookupServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateSession",
			Handler:    unaryHandler(LookupServiceCreateSessionFullMethodName, LookupServiceServer.CreateSession),
		},
		{
			MethodName: "LoadDefault",
			Handler:    unaryHandler(LookupServiceLoadDefaultFullMethodName, LookupServiceServer.LoadDefault),
		},
		{
			MethodName: "Search",
			Handler:    unaryHandler(LookupServiceSearchFullMethodName, LookupServiceServer.Search),
		},
		{
			MethodName: "GetSession",
			Handler:    unaryHandler(LookupServiceGetSessionFullMethodName, LookupServiceServer.GetSession),
		},
		{
			MethodName: "GetPokemon",
			Handler:    unaryHandler(LookupServiceGetPokemonFullMethodName, LookupServiceServer.GetPokemon),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pokedex/api/v1alpha1/lookup.proto",
}

// RegisterLookupServiceServer registers srv on s
func RegisterLookupServiceServer(s grpc.ServiceRegistrar, srv LookupServiceServer) {
	s.RegisterService(&LookupServiceDesc, srv)
}

// LookupServiceClient is the client API for the lookup service
type LookupServiceClient interface {
	CreateSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	LoadDefault(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Search(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetPokemon(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type lookupServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewLookupServiceClient creates a client on cc
func NewLookupServiceClient(cc grpc.ClientConnInterface) LookupServiceClient {
	return &lookupServiceClient{cc: cc}
}

func (c *lookupServiceClient) invoke(
	ctx context.Context,
	method string,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *lookupServiceClient) CreateSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LookupServiceCreateSessionFullMethodName, in, opts...)
}

func (c *lookupServiceClient) LoadDefault(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LookupServiceLoadDefaultFullMethodName, in, opts...)
}

func (c *lookupServiceClient) Search(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LookupServiceSearchFullMethodName, in, opts...)
}

func (c *lookupServiceClient) GetSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LookupServiceGetSessionFullMethodName, in, opts...)
}

func (c *lookupServiceClient) GetPokemon(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LookupServiceGetPokemonFullMethodName, in, opts...)
}
