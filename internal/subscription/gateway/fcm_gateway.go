package gateway

import (
	"context"
	"errors"
	"fmt"

	"interest-registry/internal/subscription/domain"
	"interest-registry/pkg/fcm"
)

// TopicManager is the slice of the FCM client the gateway needs
type TopicManager interface {
	SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*fcm.TopicResult, error)
	UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) (*fcm.TopicResult, error)
}

// FCMGateway maps interests onto FCM topics
type FCMGateway struct {
	topics TopicManager
}

func NewFCMGateway(topics TopicManager) *FCMGateway {
	return &FCMGateway{topics: topics}
}

func (g *FCMGateway) RegisterInterest(ctx context.Context, interest domain.Interest, token string) error {
	result, err := g.topics.SubscribeToTopic(ctx, []string{token}, string(interest))
	if err != nil {
		return providerError(ctx, err)
	}
	if result.FailureCount > 0 {
		return &domain.ProviderError{Message: firstReason(result)}
	}
	return nil
}

func (g *FCMGateway) DeregisterInterest(ctx context.Context, interest domain.Interest, tokens []string) (int, error) {
	removed := 0
	for start := 0; start < len(tokens); start += fcm.MaxTopicBatch {
		end := start + fcm.MaxTopicBatch
		if end > len(tokens) {
			end = len(tokens)
		}

		result, err := g.topics.UnsubscribeFromTopic(ctx, tokens[start:end], string(interest))
		if err != nil {
			return removed, providerError(ctx, err)
		}
		if result.FailureCount > 0 {
			return removed + result.SuccessCount, &domain.ProviderError{Message: firstReason(result)}
		}
		removed += result.SuccessCount
	}
	return removed, nil
}

func providerError(ctx context.Context, err error) *domain.ProviderError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &domain.ProviderError{Message: "provider request timed out", Err: err}
	}
	return domain.NewProviderError(err)
}

func firstReason(result *fcm.TopicResult) string {
	if len(result.Reasons) > 0 && result.Reasons[0] != "" {
		return result.Reasons[0]
	}
	return fmt.Sprintf("provider rejected %d token(s)", result.FailureCount)
}
