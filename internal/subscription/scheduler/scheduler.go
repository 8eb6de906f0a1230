package scheduler

import (
	"context"
	"log"
	"time"

	"interest-registry/internal/subscription/usecase"
)

// ReconcileScheduler periodically replays stored subscriptions onto the push
// provider, repairing drift left by failed commits or provider-side expiry
type ReconcileScheduler struct {
	subscriptionUsecase usecase.SubscriptionUsecase
	interval            time.Duration
	stopChan            chan struct{}
	doneChan            chan struct{}
}

// NewReconcileScheduler creates a new scheduler
func NewReconcileScheduler(subscriptionUsecase usecase.SubscriptionUsecase, interval time.Duration) *ReconcileScheduler {
	return &ReconcileScheduler{
		subscriptionUsecase: subscriptionUsecase,
		interval:            interval,
		stopChan:            make(chan struct{}),
		doneChan:            make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *ReconcileScheduler) Start() {
	log.Printf("[ReconcileScheduler] Starting reconcile scheduler (interval: %s)", s.interval)

	go func() {
		defer close(s.doneChan)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.reconcile()
			case <-s.stopChan:
				log.Println("[ReconcileScheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler and waits for the running pass
func (s *ReconcileScheduler) Stop() {
	close(s.stopChan)
	<-s.doneChan
}

func (s *ReconcileScheduler) reconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	start := time.Now()
	confirmed, err := s.subscriptionUsecase.Reconcile(ctx)
	if err != nil {
		log.Printf("[ReconcileScheduler] Reconcile pass failed after %d subscriptions: %v", confirmed, err)
		return
	}
	log.Printf("[ReconcileScheduler] Confirmed %d subscriptions in %s", confirmed, time.Since(start))
}
