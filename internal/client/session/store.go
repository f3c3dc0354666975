package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/hotelbook/internal/client/client"
	"github.com/dmitrijs2005/hotelbook/internal/client/models"
	"github.com/dmitrijs2005/hotelbook/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/hotelbook/internal/dbx"
)

// Storage keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// User-facing notifications.
const (
	MsgLoginSucceeded    = "Login successful!"
	MsgRegisterSucceeded = "Registration successful! Welcome to Intelligent Hotel."
	MsgLoggedOut         = "Logged out successfully"
	MsgLoginFailed       = "Login failed. Please check your credentials."
	MsgRegisterFailed    = "Registration failed. Please try again."
)

// Result reports the outcome of Login or Register. Error carries the server's
// message (or the local failure) when Success is false.
type Result struct {
	Success bool
	Message string
	Error   string
}

type Store struct {
	api client.Client
	db  *sql.DB

	// mu serialises mutators; state guards the fields below.
	mu    sync.Mutex
	state sync.RWMutex
	token string
	user  *models.User
}

// New creates a Store backed by api and db (already migrated) and restores
// any persisted session.
func New(ctx context.Context, api client.Client, db *sql.DB) (*Store, error) {
	s := &Store{api: api, db: db}

	repo := metadata.NewSQLiteRepository(db)

	token, err := repo.Get(ctx, KeyToken)
	if err != nil {
		return nil, err
	}
	rawUser, err := repo.Get(ctx, KeyUser)
	if err != nil {
		return nil, err
	}

	s.token = string(token)
	if len(rawUser) > 0 {
		var u models.User
		// An unreadable user record is ignored; the token alone decides
		// whether the session is authenticated.
		if json.Unmarshal(rawUser, &u) == nil {
			s.user = &u
		}
	}

	return s, nil
}

// Login authenticates against the server and stores the new session.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return Result{Message: MsgLoginFailed, Error: client.Message(err)}
	}
	if err := s.save(ctx, res); err != nil {
		return Result{Message: MsgLoginFailed, Error: err.Error()}
	}
	return Result{Success: true, Message: MsgLoginSucceeded}
}

// Register creates an account and stores the new session.
func (s *Store) Register(ctx context.Context, name, email, password string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return Result{Message: MsgRegisterFailed, Error: client.Message(err)}
	}
	if err := s.save(ctx, res); err != nil {
		return Result{Message: MsgRegisterFailed, Error: err.Error()}
	}
	return Result{Success: true, Message: MsgRegisterSucceeded}
}

// Logout forgets the session locally. The server is not contacted. On error
// the session is left as it was.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, KeyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, KeyUser)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.state.Lock()
	s.token, s.user = "", nil
	s.state.Unlock()
	return nil
}

func (s *Store) IsAuthenticated() bool {
	s.state.RLock()
	defer s.state.RUnlock()
	return s.token != ""
}

func (s *Store) Token() string {
	s.state.RLock()
	defer s.state.RUnlock()
	return s.token
}

// User returns a copy of the signed-in user, or nil.
func (s *Store) User() *models.User {
	s.state.RLock()
	defer s.state.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// save writes both keys in one transaction, then swaps memory.
func (s *Store) save(ctx context.Context, res *client.AuthResponse) error {
	u := res.User
	rawUser, err := json.Marshal(u)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyToken, []byte(res.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUser, rawUser)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.state.Lock()
	s.token, s.user = res.Token, &u
	s.state.Unlock()
	return nil
}
