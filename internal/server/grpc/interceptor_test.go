package grpc

import (
	"context"
	"testing"
	"time"

	pb "github.com/dmitrijs2005/hotelbook/internal/proto"
	"github.com/dmitrijs2005/hotelbook/internal/server/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
)

func TestInterceptor_UnprotectedAllowsWithoutToken(t *testing.T) {
	svc, _ := newUserService(t)
	s := NewGRPCServer("", nopLogger{}, svc)

	info := &grpc.UnaryServerInfo{FullMethod: pb.AuthService_Login_FullMethodName}
	handlerCalled := false

	h := func(ctx context.Context, req any) (any, error) {
		handlerCalled = true
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	require.NoError(t, err)
	assert.True(t, handlerCalled)
	assert.Equal(t, "ok", resp)
}

func expiredToken(t *testing.T, userID string, secret []byte) string {
	t.Helper()
	past := time.Now().Add(-time.Hour)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
		},
		UserID: userID,
	}).SignedString(secret)
	require.NoError(t, err)
	return tok
}

func TestInterceptor_Protected(t *testing.T) {
	svc, tm := newUserService(t)
	s := NewGRPCServer("", nopLogger{}, svc)
	info := &grpc.UnaryServerInfo{FullMethod: pb.AuthService_Me_FullMethodName}

	valid, err := tm.Issue("user-1")
	require.NoError(t, err)
	expired := expiredToken(t, "user-1", []byte("grpc-secret"))

	tests := []struct {
		name    string
		md      metadata.MD
		wantErr string
		wantID  string
	}{
		{name: "missing", md: nil, wantErr: msgNoToken},
		{name: "empty", md: metadata.Pairs("authorization", ""), wantErr: msgNoToken},
		{name: "garbage", md: metadata.Pairs("authorization", "Bearer junk"), wantErr: msgTokenFailed},
		{name: "expired", md: metadata.Pairs("authorization", "Bearer "+expired), wantErr: msgTokenExpired},
		{name: "bearer", md: metadata.Pairs("authorization", "Bearer "+valid), wantID: "user-1"},
		{name: "bare", md: metadata.Pairs("authorization", valid), wantID: "user-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}

			var gotID string
			h := func(ctx context.Context, req any) (any, error) {
				gotID, _ = userIDFromContext(ctx)
				return "ok", nil
			}

			_, err := s.accessTokenInterceptor(ctx, nil, info, h)
			if tt.wantErr != "" {
				requireCode(t, err, codes.Unauthenticated, tt.wantErr)
				assert.Empty(t, gotID, "handler must not run")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, gotID)
		})
	}
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := NewGRPCServer("", nopLogger{}, nil)
	info := &grpc.UnaryServerInfo{FullMethod: pb.AuthService_Ping_FullMethodName}

	resp, err := s.loggingInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return "pong", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "pong", resp)
}
