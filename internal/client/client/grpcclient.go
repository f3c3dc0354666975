package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/hotelbook/internal/client/models"
	"github.com/dmitrijs2005/hotelbook/internal/common"
	pb "github.com/dmitrijs2005/hotelbook/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// GRPCClient talks to hotelbook.auth.AuthService.
type GRPCClient struct {
	conn   *grpc.ClientConn
	client pb.AuthServiceClient
}

// NewGRPCClient creates a lazily connecting client for endpoint (host:port).
// Extra dial options are appended to the defaults.
func NewGRPCClient(endpoint string, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return nil, err
	}
	return &GRPCClient{conn: conn, client: pb.NewAuthServiceClient(conn)}, nil
}

func withAccessToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, common.AuthorizationHeaderName, common.BearerScheme+" "+token)
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	req, err := structpb.NewStruct(map[string]any{"name": name, "email": email, "password": password})
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Register(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return authResponse(resp)
}

func (c *GRPCClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req, err := structpb.NewStruct(map[string]any{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Login(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return authResponse(resp)
}

func (c *GRPCClient) Me(ctx context.Context, token string) (*models.User, error) {
	resp, err := c.client.Me(withAccessToken(ctx, token), &structpb.Struct{})
	if err != nil {
		return nil, mapError(err)
	}
	u := pb.Struct(resp, "user")
	if u == nil {
		return nil, &APIError{Status: http.StatusOK, Message: "malformed response"}
	}
	return userFromStruct(u), nil
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	resp, err := c.client.Ping(ctx, &structpb.Struct{})
	if err != nil {
		return mapError(err)
	}
	if pb.String(resp, "status") != "OK" {
		return ErrUnavailable
	}
	return nil
}

func authResponse(resp *structpb.Struct) (*AuthResponse, error) {
	u := pb.Struct(resp, "user")
	token := pb.String(resp, "token")
	if !pb.Bool(resp, "success") || u == nil || token == "" {
		return nil, &APIError{Status: http.StatusOK, Message: "malformed response"}
	}
	return &AuthResponse{Message: pb.String(resp, "message"), User: *userFromStruct(u), Token: token}, nil
}

func userFromStruct(s *structpb.Struct) *models.User {
	return &models.User{ID: pb.String(s, "id"), Name: pb.String(s, "name"), Email: pb.String(s, "email")}
}

// mapError converts a gRPC status into ErrUnavailable or an APIError with the
// equivalent HTTP status.
func mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var code int
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.InvalidArgument, codes.AlreadyExists:
		code = http.StatusBadRequest
	case codes.Unauthenticated:
		code = http.StatusUnauthorized
	case codes.NotFound:
		code = http.StatusNotFound
	default:
		code = http.StatusInternalServerError
	}
	return &APIError{Status: code, Message: st.Message()}
}

var _ Client = (*GRPCClient)(nil)
