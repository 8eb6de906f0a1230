package repository

import (
	"context"

	"interest-registry/internal/subscription/domain"
)

// SubscriptionRepository owns the device-token-to-interest rows
type SubscriptionRepository interface {
	// DeleteAll removes every subscription for the interest and returns how many were removed
	DeleteAll(ctx context.Context, interest domain.Interest) (int64, error)

	// Insert creates a new subscription row.
	// Returns *domain.ConflictError when a row for the interest already exists.
	Insert(ctx context.Context, interest domain.Interest, token string) (*domain.Subscription, error)

	// DeleteToken removes the matching token for the interest, or all of them when token is nil
	DeleteToken(ctx context.Context, interest domain.Interest, token *string) (int64, error)

	// FindByInterest returns the subscriptions currently held for the interest
	FindByInterest(ctx context.Context, interest domain.Interest) ([]domain.Subscription, error)

	// List pages through every subscription ordered by interest
	List(ctx context.Context, limit, offset int) ([]domain.Subscription, error)

	// Transaction runs fn atomically; any error returned by fn rolls back its mutations
	Transaction(ctx context.Context, fn func(repo SubscriptionRepository) error) error
}
