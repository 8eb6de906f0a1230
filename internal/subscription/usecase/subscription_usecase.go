package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"interest-registry/internal/subscription/domain"
	"interest-registry/internal/subscription/dto"
	"interest-registry/internal/subscription/gateway"
	"interest-registry/internal/subscription/repository"
)

// subscriptionUsecase implements SubscriptionUsecase interface.
// The repository is authoritative; the gateway is updated inside the same
// transaction so a provider failure rolls the store back.
type subscriptionUsecase struct {
	repo            repository.SubscriptionRepository
	resolver        InterestResolver
	gateway         gateway.DeliveryGateway
	publisher       EventPublisher
	providerTimeout time.Duration
	locker          *interestLocker
}

// NewSubscriptionUsecase creates a new instance of subscriptionUsecase
func NewSubscriptionUsecase(repo repository.SubscriptionRepository, resolver InterestResolver, gw gateway.DeliveryGateway, providerTimeout time.Duration) SubscriptionUsecase {
	return &subscriptionUsecase{
		repo:            repo,
		resolver:        resolver,
		gateway:         gw,
		providerTimeout: providerTimeout,
		locker:          newInterestLocker(),
	}
}

func (u *subscriptionUsecase) SetEventPublisher(publisher EventPublisher) {
	u.publisher = publisher
}

func (u *subscriptionUsecase) Subscribe(ctx context.Context, req *dto.SubscribeRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	interest, err := u.resolver.Resolve(ctx, req.SellerToken)
	if err != nil {
		return "", classify(err)
	}

	unlock := u.locker.Lock(interest)
	defer unlock()

	var superseded []string
	err = u.repo.Transaction(ctx, func(tx repository.SubscriptionRepository) error {
		prior, err := tx.FindByInterest(ctx, interest)
		if err != nil {
			return domain.NewProviderError(err)
		}

		// One token per interest; the latest subscribe wins
		if _, err := tx.DeleteAll(ctx, interest); err != nil {
			return domain.NewProviderError(err)
		}
		if _, err := tx.Insert(ctx, interest, req.ExpoToken); err != nil {
			return err
		}

		gwCtx, cancel := context.WithTimeout(ctx, u.providerTimeout)
		defer cancel()
		if err := u.gateway.RegisterInterest(gwCtx, interest, req.ExpoToken); err != nil {
			return err
		}

		for _, sub := range prior {
			if sub.Token != req.ExpoToken {
				superseded = append(superseded, sub.Token)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("[Subscription] Subscribe failed for %s: %v", interest, err)
		return "", classify(err)
	}

	log.Printf("[Subscription] %s subscribed (%d superseded)", interest, len(superseded))

	if len(superseded) > 0 {
		u.dropSuperseded(interest, superseded)
	}
	u.publish(domain.SubscriptionEvent{
		Type:     domain.EventSubscribed,
		Interest: interest,
		Token:    req.ExpoToken,
		Count:    1,
	})

	return req.ExpoToken, nil
}

func (u *subscriptionUsecase) Unsubscribe(ctx context.Context, req *dto.UnsubscribeRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	interest, err := u.resolver.Resolve(ctx, req.SellerToken)
	if err != nil {
		return 0, classify(err)
	}

	unlock := u.locker.Lock(interest)
	defer unlock()

	var deleted int64
	err = u.repo.Transaction(ctx, func(tx repository.SubscriptionRepository) error {
		var tokens []string
		if req.ExpoToken != nil {
			tokens = []string{*req.ExpoToken}
		} else {
			subs, err := tx.FindByInterest(ctx, interest)
			if err != nil {
				return domain.NewProviderError(err)
			}
			for _, sub := range subs {
				tokens = append(tokens, sub.Token)
			}
		}

		if len(tokens) > 0 {
			gwCtx, cancel := context.WithTimeout(ctx, u.providerTimeout)
			defer cancel()
			if _, err := u.gateway.DeregisterInterest(gwCtx, interest, tokens); err != nil {
				return err
			}
		}

		n, err := tx.DeleteToken(ctx, interest, req.ExpoToken)
		if err != nil {
			return domain.NewProviderError(err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		log.Printf("[Subscription] Unsubscribe failed for %s: %v", interest, err)
		return 0, classify(err)
	}

	log.Printf("[Subscription] %s unsubscribed (%d deleted)", interest, deleted)

	if deleted > 0 {
		event := domain.SubscriptionEvent{
			Type:     domain.EventUnsubscribed,
			Interest: interest,
			Count:    deleted,
		}
		if req.ExpoToken != nil {
			event.Token = *req.ExpoToken
		}
		u.publish(event)
	}

	return deleted, nil
}

func (u *subscriptionUsecase) ListSubscriptions(ctx context.Context, interest domain.Interest) ([]domain.Subscription, error) {
	if interest == "" {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{{Field: "interest", Message: "interest is required"}}}
	}
	subs, err := u.repo.FindByInterest(ctx, interest)
	if err != nil {
		return nil, domain.NewProviderError(err)
	}
	return subs, nil
}

// reconcileBatch is the page size used when walking the store
const reconcileBatch = 500

func (u *subscriptionUsecase) Reconcile(ctx context.Context) (int, error) {
	confirmed := 0
	seen := make(map[domain.Interest]bool)

	for offset := 0; ; offset += reconcileBatch {
		page, err := u.repo.List(ctx, reconcileBatch, offset)
		if err != nil {
			return confirmed, domain.NewProviderError(err)
		}

		for _, sub := range page {
			if seen[sub.Interest] {
				continue
			}
			seen[sub.Interest] = true

			n, err := u.reconcileInterest(ctx, sub.Interest)
			if err != nil {
				log.Printf("[Subscription] Reconcile failed for %s: %v", sub.Interest, err)
				continue
			}
			confirmed += n
		}

		if len(page) < reconcileBatch {
			return confirmed, nil
		}
	}
}

// reconcileInterest re-reads the interest under its lock so a concurrent
// subscribe cannot have a superseded token re-registered
func (u *subscriptionUsecase) reconcileInterest(ctx context.Context, interest domain.Interest) (int, error) {
	unlock := u.locker.Lock(interest)
	defer unlock()

	subs, err := u.repo.FindByInterest(ctx, interest)
	if err != nil {
		return 0, err
	}

	confirmed := 0
	for _, sub := range subs {
		gwCtx, cancel := context.WithTimeout(ctx, u.providerTimeout)
		err := u.gateway.RegisterInterest(gwCtx, interest, sub.Token)
		cancel()
		if err != nil {
			return confirmed, err
		}
		confirmed++
	}
	return confirmed, nil
}

// dropSuperseded removes replaced tokens from the provider topic.
// The store no longer references them, so failures are only logged.
func (u *subscriptionUsecase) dropSuperseded(interest domain.Interest, tokens []string) {
	ctx, cancel := context.WithTimeout(context.Background(), u.providerTimeout)
	defer cancel()

	if _, err := u.gateway.DeregisterInterest(ctx, interest, tokens); err != nil {
		log.Printf("[Subscription] Failed to drop %d superseded token(s) for %s: %v", len(tokens), interest, err)
	}
}

func (u *subscriptionUsecase) publish(event domain.SubscriptionEvent) {
	if u.publisher == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), u.providerTimeout)
		defer cancel()
		if err := u.publisher.Publish(ctx, event); err != nil {
			log.Printf("[Subscription] Failed to publish %s event for %s: %v", event.Type, event.Interest, err)
		}
	}()
}

// classify keeps typed registry errors and turns everything else into a ProviderError
func classify(err error) error {
	var (
		verr *domain.ValidationError
		nerr *domain.NotFoundError
		cerr *domain.ConflictError
		perr *domain.ProviderError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &nerr), errors.As(err, &cerr), errors.As(err, &perr):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return &domain.ProviderError{Message: "provider request timed out", Err: err}
	default:
		return domain.NewProviderError(err)
	}
}
