package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	pb "github.com/dmitrijs2005/hotelbook/internal/proto"
	"github.com/dmitrijs2005/hotelbook/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Status messages match the HTTP API.
const (
	msgRegistered         = "User registered successfully"
	msgLoggedIn           = "Login successful"
	msgUserExists         = "User already exists with this email"
	msgInvalidCredentials = "Invalid credentials"
	msgRegisterFailed     = "Server error during registration"
	msgLoginFailed        = "Server error during login"
	msgNoToken            = "Not authorized, no token"
	msgTokenFailed        = "Not authorized, token failed"
	msgTokenExpired       = "Not authorized, token expired"
)

func (s *GRPCServer) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	res, err := s.users.Register(ctx, pb.String(req, "name"), pb.String(req, "email"), pb.String(req, "password"))
	if err != nil {
		var ve *common.ValidationError
		switch {
		case errors.As(err, &ve):
			return nil, status.Error(codes.InvalidArgument, ve.Message)
		case errors.Is(err, common.ErrDuplicateIdentity):
			return nil, status.Error(codes.AlreadyExists, msgUserExists)
		default:
			s.logger.Error(ctx, "register failed", "error", err)
			return nil, status.Error(codes.Internal, msgRegisterFailed+": "+err.Error())
		}
	}

	return authResponse(msgRegistered, res), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	res, err := s.users.Login(ctx, pb.String(req, "email"), pb.String(req, "password"))
	if err != nil {
		var ve *common.ValidationError
		switch {
		case errors.As(err, &ve):
			return nil, status.Error(codes.InvalidArgument, ve.Message)
		case errors.Is(err, common.ErrInvalidCredentials):
			return nil, status.Error(codes.Unauthenticated, msgInvalidCredentials)
		default:
			s.logger.Error(ctx, "login failed", "error", err)
			return nil, status.Error(codes.Internal, msgLoginFailed+": "+err.Error())
		}
	}

	return authResponse(msgLoggedIn, res), nil
}

func (s *GRPCServer) Me(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, msgNoToken)
	}

	u, err := s.users.Me(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			return nil, status.Error(codes.Unauthenticated, msgTokenFailed)
		}
		s.logger.Error(ctx, "me failed", "error", err)
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"success": structpb.NewBoolValue(true),
		"user":    structpb.NewStructValue(pb.UserStruct(u.ID, u.Name, u.Email)),
	}}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"status": structpb.NewStringValue("OK"),
	}}, nil
}

func authResponse(message string, res *services.AuthResult) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"success": structpb.NewBoolValue(true),
		"message": structpb.NewStringValue(message),
		"user":    structpb.NewStructValue(pb.UserStruct(res.User.ID, res.User.Name, res.User.Email)),
		"token":   structpb.NewStringValue(res.Token),
	}}
}

var _ pb.AuthServiceServer = (*GRPCServer)(nil)
