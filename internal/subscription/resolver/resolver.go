package resolver

import (
	"context"
	"fmt"

	sellerrepo "interest-registry/internal/seller/repository"
	"interest-registry/internal/subscription/domain"
)

// InterestResolver derives the interest a seller's devices subscribe to
type InterestResolver struct {
	sellerRepo sellerrepo.SellerRepository
	prefix     string
}

// NewInterestResolver creates a resolver producing "<prefix>.<sellerID>" interests
func NewInterestResolver(sellerRepo sellerrepo.SellerRepository, prefix string) *InterestResolver {
	return &InterestResolver{
		sellerRepo: sellerRepo,
		prefix:     prefix,
	}
}

// Resolve looks up the seller holding sellerToken and returns its interest
func (r *InterestResolver) Resolve(ctx context.Context, sellerToken string) (domain.Interest, error) {
	seller, err := r.sellerRepo.FindByToken(ctx, sellerToken)
	if err != nil {
		return "", fmt.Errorf("failed to look up seller: %w", err)
	}
	if seller == nil {
		return "", &domain.NotFoundError{Resource: "seller"}
	}
	return InterestName(r.prefix, seller.ID), nil
}

// InterestName is the canonical interest for an account ID
func InterestName(prefix, accountID string) domain.Interest {
	if prefix == "" {
		return domain.Interest(accountID)
	}
	return domain.Interest(prefix + "." + accountID)
}
