package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/cryptox"
	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"github.com/dmitrijs2005/hotelbook/internal/server/auth"
	"github.com/dmitrijs2005/hotelbook/internal/server/models"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTokens(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager([]byte("test-secret"), 30*24*time.Hour)
	require.NoError(t, err)
	return tm
}

func newHasher(t *testing.T) cryptox.PasswordHasher {
	t.Helper()
	h, err := cryptox.NewPasswordHasher(cryptox.AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

// countingRepo wraps a repository and counts writes.
type countingRepo struct {
	users.Repository
	creates int

	getErr    error
	createErr error
	getByID   error
}

func (r *countingRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.creates++
	if r.createErr != nil {
		return nil, r.createErr
	}
	return r.Repository.Create(ctx, u)
}

func (r *countingRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.Repository.GetUserByEmail(ctx, email)
}

func (r *countingRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if r.getByID != nil {
		return nil, r.getByID
	}
	return r.Repository.GetUserByID(ctx, id)
}

type failingIssuer struct{ TokenIssuer }

func (failingIssuer) Issue(string) (string, error) { return "", errors.New("sign failed") }

func newService(t *testing.T) (*UserService, *countingRepo, *auth.TokenManager) {
	t.Helper()
	repo := &countingRepo{Repository: users.NewInMemoryRepository()}
	tm := newTokens(t)
	return NewUserService(repo, newHasher(t), tm, discardLogger()), repo, tm
}

// --- tests ---

func TestRegisterThenLogin_SamePrincipal(t *testing.T) {
	ctx := context.Background()
	s, repo, tm := newService(t)

	reg, err := s.Register(ctx, "John Doe", "john@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", reg.User.Email)
	assert.Equal(t, "John Doe", reg.User.Name)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, 1, repo.creates)

	login, err := s.Login(ctx, "john@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, reg.User, login.User)
	assert.Equal(t, 1, repo.creates, "login must not write")

	id1, err := tm.Verify(reg.Token)
	require.NoError(t, err)
	id2, err := tm.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
	assert.Equal(t, reg.User.ID, id1)
}

func TestRegisterThenLogin_LongPassword(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)
	password := strings.Repeat("a", 80)

	reg, err := s.Register(ctx, "Long", "long@example.com", password)
	require.NoError(t, err)

	login, err := s.Login(ctx, "long@example.com", password)
	require.NoError(t, err)
	assert.Equal(t, reg.User, login.User)
}

func TestRegister_StoresDigestNotPlaintext(t *testing.T) {
	ctx := context.Background()
	repo := users.NewInMemoryRepository()
	s := NewUserService(repo, newHasher(t), newTokens(t), discardLogger())

	_, err := s.Register(ctx, "A", "a@example.com", "password123")
	require.NoError(t, err)

	u, err := repo.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.True(t, cryptox.VerifyPassword([]byte("password123"), u.PasswordHash))
}

func TestRegister_Validation(t *testing.T) {
	s, repo, _ := newService(t)

	cases := [][3]string{
		{"", "a@example.com", "p"},
		{"A", "", "p"},
		{"A", "a@example.com", ""},
		{"", "", ""},
	}
	for _, c := range cases {
		_, err := s.Register(context.Background(), c[0], c[1], c[2])
		require.ErrorIs(t, err, common.ErrValidation)

		var ve *common.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, MsgRegisterMissingFields, ve.Message)
	}
	assert.Equal(t, 0, repo.creates)
}

func TestRegister_Duplicate(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newService(t)

	_, err := s.Register(ctx, "John Doe", "john@example.com", "password123")
	require.NoError(t, err)

	_, err = s.Register(ctx, "Other", "john@example.com", "different")
	require.ErrorIs(t, err, common.ErrDuplicateIdentity)
	assert.Equal(t, 1, repo.creates, "pre-check rejects before any write")
}

func TestRegister_DuplicateFromStoreConstraint(t *testing.T) {
	s, repo, _ := newService(t)
	repo.createErr = common.ErrDuplicateIdentity

	_, err := s.Register(context.Background(), "A", "a@example.com", "p")
	require.ErrorIs(t, err, common.ErrDuplicateIdentity)
}

func TestRegister_InternalErrors(t *testing.T) {
	t.Run("lookup", func(t *testing.T) {
		s, repo, _ := newService(t)
		repo.getErr = errors.New("db error: down")

		_, err := s.Register(context.Background(), "A", "a@example.com", "p")
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrValidation)
		assert.NotErrorIs(t, err, common.ErrDuplicateIdentity)
		assert.Equal(t, 0, repo.creates)
	})

	t.Run("create", func(t *testing.T) {
		s, repo, _ := newService(t)
		repo.createErr = errors.New("db error: down")

		_, err := s.Register(context.Background(), "A", "a@example.com", "p")
		require.ErrorContains(t, err, "create user")
	})

	t.Run("token signing leaves no record", func(t *testing.T) {
		repo := &countingRepo{Repository: users.NewInMemoryRepository()}
		s := NewUserService(repo, newHasher(t), failingIssuer{}, discardLogger())

		_, err := s.Register(context.Background(), "A", "a@example.com", "p")
		require.ErrorContains(t, err, "issue token")
		assert.Equal(t, 0, repo.creates)
	})
}

func TestLogin_InvalidCredentialsIndistinguishable(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)

	_, err := s.Register(ctx, "John Doe", "john@example.com", "password123")
	require.NoError(t, err)

	_, errWrong := s.Login(ctx, "john@example.com", "wrong")
	_, errUnknown := s.Login(ctx, "nobody@example.com", "password123")

	require.ErrorIs(t, errWrong, common.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknown, common.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestLogin_Validation(t *testing.T) {
	s, _, _ := newService(t)

	for _, c := range [][2]string{{"", "p"}, {"a@example.com", ""}} {
		_, err := s.Login(context.Background(), c[0], c[1])
		var ve *common.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, MsgLoginMissingFields, ve.Message)
	}
}

func TestLogin_LookupFailure(t *testing.T) {
	s, repo, _ := newService(t)
	repo.getErr = errors.New("db error: timeout")

	_, err := s.Login(context.Background(), "a@example.com", "p")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestAuthenticateAndMe(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newService(t)

	reg, err := s.Register(ctx, "John Doe", "john@example.com", "password123")
	require.NoError(t, err)

	id, err := s.Authenticate(reg.Token)
	require.NoError(t, err)

	me, err := s.Me(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, reg.User, *me)

	_, err = s.Authenticate("garbage")
	require.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = s.Me(ctx, "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, common.ErrInvalidToken)

	repo.getByID = errors.New("db error: gone")
	_, err = s.Me(ctx, id)
	require.ErrorContains(t, err, "lookup user")
}
