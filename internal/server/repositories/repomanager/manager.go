// Package repomanager wires the credential store to its backing storage and
// owns schema migrations for it.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/users"
)

// RepositoryManager vends repositories for one storage backend.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Close() error
}

// New returns the postgres manager when dsn is set and the in-memory one otherwise.
func New(ctx context.Context, dsn string) (RepositoryManager, error) {
	if dsn == "" {
		return NewInMemoryRepositoryManager(), nil
	}
	return NewPostgresRepositoryManager(ctx, dsn)
}
