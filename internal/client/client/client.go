package client

import (
	"context"

	"github.com/dmitrijs2005/hotelbook/internal/client/models"
)

// AuthResponse is a successful register or login answer.
type AuthResponse struct {
	Message string
	User    models.User
	Token   string
}

// Client is the transport-agnostic contract for the hotelbook auth API.
type Client interface {
	Close() error
	Register(ctx context.Context, name, email, password string) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Me(ctx context.Context, token string) (*models.User, error)
	Ping(ctx context.Context) error
}
