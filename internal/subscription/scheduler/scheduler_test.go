package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"interest-registry/internal/subscription/usecase"

	"github.com/stretchr/testify/assert"
)

type countingUsecase struct {
	usecase.SubscriptionUsecase
	calls atomic.Int32
}

func (u *countingUsecase) Reconcile(ctx context.Context) (int, error) {
	u.calls.Add(1)
	return 0, nil
}

func TestReconcileSchedulerRunsUntilStopped(t *testing.T) {
	uc := &countingUsecase{}
	s := NewReconcileScheduler(uc, 10*time.Millisecond)
	s.Start()

	assert.Eventually(t, func() bool { return uc.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	s.Stop()
	after := uc.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, uc.calls.Load())
}
