package gateway

import (
	"context"
	"log"
	"sync"

	"interest-registry/internal/subscription/domain"
)

// MemoryGateway keeps topic membership in process memory.
// Used when no push provider is configured.
type MemoryGateway struct {
	mu     sync.Mutex
	topics map[domain.Interest]map[string]struct{}
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{topics: make(map[domain.Interest]map[string]struct{})}
}

func (g *MemoryGateway) RegisterInterest(ctx context.Context, interest domain.Interest, token string) error {
	if err := ctx.Err(); err != nil {
		return providerError(ctx, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	members, ok := g.topics[interest]
	if !ok {
		members = make(map[string]struct{})
		g.topics[interest] = members
	}
	members[token] = struct{}{}
	log.Printf("[MemoryGateway] Registered token for %s (%d members)", interest, len(members))
	return nil
}

func (g *MemoryGateway) DeregisterInterest(ctx context.Context, interest domain.Interest, tokens []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, providerError(ctx, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	members := g.topics[interest]
	removed := 0
	for _, token := range tokens {
		if _, ok := members[token]; ok {
			delete(members, token)
			removed++
		}
	}
	if len(members) == 0 {
		delete(g.topics, interest)
	}
	return removed, nil
}

// Members returns the tokens registered for interest
func (g *MemoryGateway) Members(interest domain.Interest) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]string, 0, len(g.topics[interest]))
	for token := range g.topics[interest] {
		out = append(out, token)
	}
	return out
}
