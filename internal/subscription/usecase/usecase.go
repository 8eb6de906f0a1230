package usecase

import (
	"context"

	"interest-registry/internal/subscription/domain"
	"interest-registry/internal/subscription/dto"
)

// SubscriptionUsecase defines the subscription registry operations
type SubscriptionUsecase interface {
	// Subscribe makes req.ExpoToken the single active token for the seller's interest
	Subscribe(ctx context.Context, req *dto.SubscribeRequest) (string, error)

	// Unsubscribe removes req.ExpoToken (or every token when nil) and returns how many rows were deleted
	Unsubscribe(ctx context.Context, req *dto.UnsubscribeRequest) (int64, error)

	// ListSubscriptions returns the stored subscriptions for an interest
	ListSubscriptions(ctx context.Context, interest domain.Interest) ([]domain.Subscription, error)

	// Reconcile re-registers every stored subscription with the delivery gateway
	// and returns how many were confirmed
	Reconcile(ctx context.Context) (int, error)

	// SetEventPublisher sets the publisher notified after each committed change
	SetEventPublisher(publisher EventPublisher)
}

// InterestResolver derives an interest from a seller token
type InterestResolver interface {
	Resolve(ctx context.Context, sellerToken string) (domain.Interest, error)
}

// EventPublisher receives committed subscription changes
type EventPublisher interface {
	Publish(ctx context.Context, event domain.SubscriptionEvent) error
}
