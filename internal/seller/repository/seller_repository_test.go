package repository

import (
	"context"
	"testing"

	sellerdomain "interest-registry/internal/seller/domain"
	"interest-registry/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) SellerRepository {
	t.Helper()
	db, err := database.NewSQLiteConnection("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&sellerdomain.Seller{}))
	return NewSellerRepository(db)
}

func TestSellerRepository(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	seller := &sellerdomain.Seller{Name: "Corner Shop", Token: "seller-token-1"}
	require.NoError(t, repo.Create(ctx, seller))
	assert.NotEmpty(t, seller.ID)

	found, err := repo.FindByToken(ctx, "seller-token-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, seller.ID, found.ID)

	byID, err := repo.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Corner Shop", byID.Name)

	missing, err := repo.FindByToken(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
