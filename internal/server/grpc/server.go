// Package grpc exposes the auth API as the hotelbook.auth.AuthService gRPC service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/hotelbook/internal/logging"
	pb "github.com/dmitrijs2005/hotelbook/internal/proto"
	"github.com/dmitrijs2005/hotelbook/internal/server/services"
	"google.golang.org/grpc"
)

// AuthService is the behaviour the gRPC layer needs from the user service.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Authenticate(token string) (string, error)
	Me(ctx context.Context, userID string) (*services.UserSummary, error)
}

type GRPCServer struct {
	address string
	users   AuthService
	logger  logging.Logger
}

func NewGRPCServer(address string, l logging.Logger, us AuthService) *GRPCServer {
	return &GRPCServer{
		address: address,
		logger:  l.With("module", "grpc_server"),
		users:   us,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterAuthServiceServer(srv, s)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	<-stopped
	return nil
}
