// Package users is the credential store: one record per registered principal.
package users

import (
	"context"

	"github.com/dmitrijs2005/hotelbook/internal/server/models"
)

// Repository stores principals. Records are only ever created.
//
// Create assigns CreatedAt (and ID when empty) and returns common.ErrDuplicateIdentity
// when the email is already taken. The lookups return common.ErrorNotFound
// for unknown keys.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
