package resolver

import (
	"context"
	"errors"
	"testing"

	sellerdomain "interest-registry/internal/seller/domain"
	"interest-registry/internal/subscription/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSellerRepo struct {
	byToken map[string]*sellerdomain.Seller
	err     error
}

func (s *stubSellerRepo) Create(ctx context.Context, seller *sellerdomain.Seller) error {
	s.byToken[seller.Token] = seller
	return nil
}

func (s *stubSellerRepo) FindByToken(ctx context.Context, token string) (*sellerdomain.Seller, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byToken[token], nil
}

func (s *stubSellerRepo) FindByID(ctx context.Context, id string) (*sellerdomain.Seller, error) {
	for _, seller := range s.byToken {
		if seller.ID == id {
			return seller, nil
		}
	}
	return nil, nil
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	repo := &stubSellerRepo{byToken: map[string]*sellerdomain.Seller{
		"s1-token": {ID: "S1", Token: "s1-token"},
		"s2-token": {ID: "S2", Token: "s2-token"},
	}}
	r := NewInterestResolver(repo, "App.Seller")

	first, err := r.Resolve(ctx, "s1-token")
	require.NoError(t, err)
	second, err := r.Resolve(ctx, "s1-token")
	require.NoError(t, err)
	assert.Equal(t, domain.Interest("App.Seller.S1"), first)
	assert.Equal(t, first, second)

	other, err := r.Resolve(ctx, "s2-token")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestResolveUnknownSeller(t *testing.T) {
	r := NewInterestResolver(&stubSellerRepo{byToken: map[string]*sellerdomain.Seller{}}, "App.Seller")

	_, err := r.Resolve(context.Background(), "missing")
	var notFound *domain.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "seller not found", err.Error())
}

func TestResolveStoreError(t *testing.T) {
	boom := errors.New("connection refused")
	r := NewInterestResolver(&stubSellerRepo{err: boom}, "App.Seller")

	_, err := r.Resolve(context.Background(), "s1-token")
	assert.ErrorIs(t, err, boom)
	var notFound *domain.NotFoundError
	assert.False(t, errors.As(err, &notFound))
}

func TestInterestName(t *testing.T) {
	assert.Equal(t, domain.Interest("App.Seller.42"), InterestName("App.Seller", "42"))
	assert.Equal(t, domain.Interest("42"), InterestName("", "42"))
}
