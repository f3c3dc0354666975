// Package proto describes the hotelbook.auth.AuthService gRPC contract.
//
// Messages are google.protobuf.Struct values mirroring the JSON bodies of the
// HTTP API, so the service needs no generated code:
//
//	Register  {name, email, password}  -> {success, message, user{id,name,email}, token}
//	Login     {email, password}        -> {success, message, user, token}
//	Me        {}                       -> {success, user}   (requires "authorization" metadata)
//	Ping      {}                       -> {status}
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "hotelbook.auth.AuthService"

// Full method names.
const (
	AuthService_Register_FullMethodName = "/" + ServiceName + "/Register"
	AuthService_Login_FullMethodName    = "/" + ServiceName + "/Login"
	AuthService_Me_FullMethodName       = "/" + ServiceName + "/Me"
	AuthService_Ping_FullMethodName     = "/" + ServiceName + "/Ping"
)

// AuthServiceServer is implemented by the server side of the service.
type AuthServiceServer interface {
	Register(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Me(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterAuthServiceServer registers srv on s.
func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthService_ServiceDesc, srv)
}

type unaryCall func(AuthServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AuthService_ServiceDesc is the grpc.ServiceDesc for the auth service.
var AuthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler: unaryHandler(AuthService_Register_FullMethodName, func(s AuthServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.Register(ctx, in)
			}),
		},
		{
			MethodName: "Login",
			Handler: unaryHandler(AuthService_Login_FullMethodName, func(s AuthServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.Login(ctx, in)
			}),
		},
		{
			MethodName: "Me",
			Handler: unaryHandler(AuthService_Me_FullMethodName, func(s AuthServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.Me(ctx, in)
			}),
		},
		{
			MethodName: "Ping",
			Handler: unaryHandler(AuthService_Ping_FullMethodName, func(s AuthServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.Ping(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hotelbook/auth.proto",
}

// AuthServiceClient is the client side of the service.
type AuthServiceClient interface {
	Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Me(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc: cc}
}

func (c *authServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AuthService_Register_FullMethodName, in, opts)
}

func (c *authServiceClient) Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AuthService_Login_FullMethodName, in, opts)
}

func (c *authServiceClient) Me(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AuthService_Me_FullMethodName, in, opts)
}

func (c *authServiceClient) Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AuthService_Ping_FullMethodName, in, opts)
}
