package repository

import (
	"context"
	"errors"
	"testing"

	"interest-registry/internal/subscription/domain"
	"interest-registry/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGormRepo(t *testing.T) SubscriptionRepository {
	t.Helper()
	db, err := database.NewSQLiteConnection("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Subscription{}))
	return NewGormSubscriptionRepository(db)
}

// runRepositorySuite exercises the contract shared by every implementation
func runRepositorySuite(t *testing.T, newRepo func(t *testing.T) SubscriptionRepository) {
	ctx := context.Background()
	interest := domain.Interest("App.Seller.1")

	t.Run("delete all on absent interest is a no-op", func(t *testing.T) {
		repo := newRepo(t)
		n, err := repo.DeleteAll(ctx, interest)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("insert then find", func(t *testing.T) {
		repo := newRepo(t)
		sub, err := repo.Insert(ctx, interest, "tok-A")
		require.NoError(t, err)
		assert.NotEmpty(t, sub.ID)
		assert.Equal(t, interest, sub.Interest)

		subs, err := repo.FindByInterest(ctx, interest)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, "tok-A", subs[0].Token)
	})

	t.Run("delete token only removes matching rows", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Insert(ctx, interest, "tok-A")
		require.NoError(t, err)

		other := "tok-B"
		n, err := repo.DeleteToken(ctx, interest, &other)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)

		tok := "tok-A"
		n, err = repo.DeleteToken(ctx, interest, &tok)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("delete token without token removes everything", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Insert(ctx, interest, "tok-A")
		require.NoError(t, err)

		n, err := repo.DeleteToken(ctx, interest, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = repo.DeleteToken(ctx, interest, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("list pages across interests", func(t *testing.T) {
		repo := newRepo(t)
		for _, in := range []domain.Interest{"App.Seller.3", "App.Seller.1", "App.Seller.2"} {
			_, err := repo.Insert(ctx, in, "tok-"+string(in))
			require.NoError(t, err)
		}

		first, err := repo.List(ctx, 2, 0)
		require.NoError(t, err)
		require.Len(t, first, 2)
		assert.Equal(t, domain.Interest("App.Seller.1"), first[0].Interest)
		assert.Equal(t, domain.Interest("App.Seller.2"), first[1].Interest)

		rest, err := repo.List(ctx, 2, 2)
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, domain.Interest("App.Seller.3"), rest[0].Interest)

		none, err := repo.List(ctx, 2, 10)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("transaction commits", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Insert(ctx, interest, "tok-A")
		require.NoError(t, err)

		err = repo.Transaction(ctx, func(tx SubscriptionRepository) error {
			if _, err := tx.DeleteAll(ctx, interest); err != nil {
				return err
			}
			_, err := tx.Insert(ctx, interest, "tok-B")
			return err
		})
		require.NoError(t, err)

		subs, err := repo.FindByInterest(ctx, interest)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, "tok-B", subs[0].Token)
	})

	t.Run("transaction rolls back on error", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Insert(ctx, interest, "tok-A")
		require.NoError(t, err)

		boom := errors.New("boom")
		err = repo.Transaction(ctx, func(tx SubscriptionRepository) error {
			if _, err := tx.DeleteAll(ctx, interest); err != nil {
				return err
			}
			if _, err := tx.Insert(ctx, interest, "tok-B"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		subs, err := repo.FindByInterest(ctx, interest)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, "tok-A", subs[0].Token)
	})
}

func TestGormSubscriptionRepository(t *testing.T) {
	runRepositorySuite(t, newGormRepo)
}

func TestMemorySubscriptionRepository(t *testing.T) {
	runRepositorySuite(t, func(t *testing.T) SubscriptionRepository {
		return NewMemorySubscriptionRepository()
	})
}

func TestMemoryInsertConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySubscriptionRepository()
	interest := domain.Interest("App.Seller.1")

	_, err := repo.Insert(ctx, interest, "tok-A")
	require.NoError(t, err)

	_, err = repo.Insert(ctx, interest, "tok-B")
	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, interest, conflict.Interest)
	assert.Equal(t, 1, repo.Count())
}
