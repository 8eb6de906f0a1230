package gateway

import (
	"context"

	"interest-registry/internal/subscription/domain"
)

// DeliveryGateway mirrors registry decisions onto the external push provider.
// Failures are returned as *domain.ProviderError.
type DeliveryGateway interface {
	RegisterInterest(ctx context.Context, interest domain.Interest, token string) error
	// DeregisterInterest removes tokens from the interest and reports how many the provider dropped
	DeregisterInterest(ctx context.Context, interest domain.Interest, tokens []string) (int, error)
}
