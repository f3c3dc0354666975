// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and token verification.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/cryptox"
	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"github.com/dmitrijs2005/hotelbook/internal/server/models"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/users"
	"github.com/google/uuid"
)

// Messages returned to API callers for validation failures.
const (
	MsgRegisterMissingFields = "Please provide all required fields"
	MsgLoginMissingFields    = "Please provide email and password"
)

// TokenIssuer issues and verifies bearer tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

// UserSummary is the public view of a principal.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResult is returned by successful Register and Login calls.
type AuthResult struct {
	User  UserSummary
	Token string
}

// UserService is stateless per request; the repository is the only shared state.
type UserService struct {
	users  users.Repository
	hasher cryptox.PasswordHasher
	tokens TokenIssuer
	logger logging.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

// NewUserService constructs a UserService.
func NewUserService(repo users.Repository, hasher cryptox.PasswordHasher, tokens TokenIssuer, logger logging.Logger) *UserService {
	return &UserService{users: repo, hasher: hasher, tokens: tokens, logger: logger}
}

// Register creates a principal and returns it with a fresh token.
//
// Errors: *common.ValidationError when a field is empty,
// common.ErrDuplicateIdentity when the email is taken, anything else is internal.
// Exactly one record is written on success and none on failure.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, common.NewValidationError(MsgRegisterMissingFields)
	}

	// fast path; the store's uniqueness check is authoritative
	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrDuplicateIdentity
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	digest, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// the id is chosen and the token signed before the write,
	// so a signing failure leaves no record behind
	u := &models.User{ID: uuid.NewString(), Name: name, Email: email, PasswordHash: digest}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	u, err = s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return &AuthResult{User: summary(u), Token: token}, nil
}

// Login checks credentials and returns the principal with a fresh token.
// Unknown email and wrong password both yield common.ErrInvalidCredentials.
// Login never writes.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.NewValidationError(MsgLoginMissingFields)
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn comparable time so unknown emails are not distinguishable by latency
			s.hasher.Verify([]byte(password), s.dummy())
			s.logger.Debug(ctx, "login rejected")
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify([]byte(password), u.PasswordHash) {
		s.logger.Debug(ctx, "login rejected", "user_id", u.ID)
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", u.ID)
	return &AuthResult{User: summary(u), Token: token}, nil
}

// Authenticate verifies token and returns the principal id it carries.
func (s *UserService) Authenticate(token string) (string, error) {
	return s.tokens.Verify(token)
}

// Me returns the principal identified by userID. A token for a principal
// that no longer exists is reported as common.ErrInvalidToken.
func (s *UserService) Me(ctx context.Context, userID string) (*UserSummary, error) {
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	us := summary(u)
	return &us, nil
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		d, err := s.hasher.Hash(common.GenerateRandByteArray(16))
		if err == nil {
			s.dummyDigest = d
		}
	})
	return s.dummyDigest
}

func summary(u *models.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
