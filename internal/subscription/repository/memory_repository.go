package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"interest-registry/internal/subscription/domain"

	"github.com/google/uuid"
)

// MemorySubscriptionRepository keeps subscriptions in process memory.
// Transactions hold the store lock for their whole duration.
type MemorySubscriptionRepository struct {
	mu   sync.Mutex
	subs map[domain.Interest][]domain.Subscription
}

// NewMemorySubscriptionRepository creates an empty in-memory repository
func NewMemorySubscriptionRepository() *MemorySubscriptionRepository {
	return &MemorySubscriptionRepository{
		subs: make(map[domain.Interest][]domain.Subscription),
	}
}

func (r *MemorySubscriptionRepository) DeleteAll(ctx context.Context, interest domain.Interest) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return memoryState(r.subs).deleteAll(interest), nil
}

func (r *MemorySubscriptionRepository) Insert(ctx context.Context, interest domain.Interest, token string) (*domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return memoryState(r.subs).insert(interest, token)
}

func (r *MemorySubscriptionRepository) DeleteToken(ctx context.Context, interest domain.Interest, token *string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return memoryState(r.subs).deleteToken(interest, token), nil
}

func (r *MemorySubscriptionRepository) FindByInterest(ctx context.Context, interest domain.Interest) ([]domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return memoryState(r.subs).find(interest), nil
}

func (r *MemorySubscriptionRepository) List(ctx context.Context, limit, offset int) ([]domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return memoryState(r.subs).list(limit, offset), nil
}

func (r *MemorySubscriptionRepository) Transaction(ctx context.Context, fn func(repo SubscriptionRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &memoryTx{state: memoryState(r.subs).clone()}
	if err := fn(tx); err != nil {
		return err
	}
	r.subs = tx.state
	return nil
}

// Count returns the total number of stored subscriptions
func (r *MemorySubscriptionRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, subs := range r.subs {
		n += len(subs)
	}
	return n
}

// memoryTx works on a private copy that is swapped in on commit
type memoryTx struct {
	state memoryState
}

func (t *memoryTx) DeleteAll(ctx context.Context, interest domain.Interest) (int64, error) {
	return t.state.deleteAll(interest), nil
}

func (t *memoryTx) Insert(ctx context.Context, interest domain.Interest, token string) (*domain.Subscription, error) {
	return t.state.insert(interest, token)
}

func (t *memoryTx) DeleteToken(ctx context.Context, interest domain.Interest, token *string) (int64, error) {
	return t.state.deleteToken(interest, token), nil
}

func (t *memoryTx) FindByInterest(ctx context.Context, interest domain.Interest) ([]domain.Subscription, error) {
	return t.state.find(interest), nil
}

func (t *memoryTx) List(ctx context.Context, limit, offset int) ([]domain.Subscription, error) {
	return t.state.list(limit, offset), nil
}

func (t *memoryTx) Transaction(ctx context.Context, fn func(repo SubscriptionRepository) error) error {
	return fn(t)
}

type memoryState map[domain.Interest][]domain.Subscription

func (s memoryState) clone() memoryState {
	out := make(memoryState, len(s))
	for k, v := range s {
		out[k] = append([]domain.Subscription(nil), v...)
	}
	return out
}

func (s memoryState) deleteAll(interest domain.Interest) int64 {
	n := int64(len(s[interest]))
	delete(s, interest)
	return n
}

func (s memoryState) insert(interest domain.Interest, token string) (*domain.Subscription, error) {
	if len(s[interest]) > 0 {
		return nil, &domain.ConflictError{Interest: interest}
	}
	sub := domain.Subscription{
		ID:        uuid.New().String(),
		Interest:  interest,
		Token:     token,
		CreatedAt: time.Now(),
	}
	s[interest] = append(s[interest], sub)
	return &sub, nil
}

func (s memoryState) deleteToken(interest domain.Interest, token *string) int64 {
	if token == nil {
		return s.deleteAll(interest)
	}
	var kept []domain.Subscription
	var removed int64
	for _, sub := range s[interest] {
		if sub.Token == *token {
			removed++
			continue
		}
		kept = append(kept, sub)
	}
	if len(kept) == 0 {
		delete(s, interest)
	} else {
		s[interest] = kept
	}
	return removed
}

func (s memoryState) find(interest domain.Interest) []domain.Subscription {
	return append([]domain.Subscription(nil), s[interest]...)
}

func (s memoryState) list(limit, offset int) []domain.Subscription {
	var all []domain.Subscription
	for _, subs := range s {
		all = append(all, subs...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Interest != all[j].Interest {
			return all[i].Interest < all[j].Interest
		}
		return all[i].ID < all[j].ID
	})

	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
