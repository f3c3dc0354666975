package users

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	u, err := r.Create(ctx, &models.User{Name: "John Doe", Email: "john@example.com", PasswordHash: "d"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.False(t, u.CreatedAt.IsZero())

	byEmail, err := r.GetUserByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := r.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", byID.Name)

	// callers get copies
	byID.Name = "changed"
	again, _ := r.GetUserByID(ctx, u.ID)
	assert.Equal(t, "John Doe", again.Name)
}

func TestInMemoryRepository_EmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	_, err := r.Create(ctx, &models.User{Name: "a", Email: "john@example.com"})
	require.NoError(t, err)
	_, err = r.Create(ctx, &models.User{Name: "b", Email: "John@example.com"})
	require.NoError(t, err)

	_, err = r.GetUserByEmail(ctx, "JOHN@EXAMPLE.COM")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInMemoryRepository_Duplicate(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	_, err := r.Create(ctx, &models.User{Name: "a", Email: "x@example.com"})
	require.NoError(t, err)
	_, err = r.Create(ctx, &models.User{Name: "b", Email: "x@example.com"})
	require.ErrorIs(t, err, common.ErrDuplicateIdentity)
	assert.Equal(t, 1, r.Len())
}

func TestInMemoryRepository_NotFound(t *testing.T) {
	r := NewInMemoryRepository()
	_, err := r.GetUserByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.GetUserByID(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInMemoryRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewInMemoryRepository()
	_, err := r.Create(ctx, &models.User{Email: "x"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, r.Len())
}

func TestInMemoryRepository_ConcurrentSameEmail(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	const n = 32
	var ok, dup atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.Create(ctx, &models.User{Name: fmt.Sprint(i), Email: "race@example.com"})
			switch err {
			case nil:
				ok.Add(1)
			case common.ErrDuplicateIdentity:
				dup.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(n-1), dup.Load())
}
