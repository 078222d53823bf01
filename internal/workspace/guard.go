package workspace

import (
	"debt-ledger/internal/pkg/apperrors"
	"fmt"
	"sync"
)

// keyGuard rejects a mutation when another one holding any of the same keys is still running.
type keyGuard struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newKeyGuard() *keyGuard {
	return &keyGuard{keys: make(map[string]struct{})}
}

func (g *keyGuard) acquire(keys ...string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, k := range keys {
		if _, busy := g.keys[k]; busy {
			return nil, fmt.Errorf("%w (%s)", apperrors.ErrMutationInFlight, k)
		}
	}
	for _, k := range keys {
		g.keys[k] = struct{}{}
	}
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		for _, k := range keys {
			delete(g.keys, k)
		}
	}, nil
}

func customerKey(id string) string { return "customer:" + id }
func debtKey(id string) string { return "debt:" + id }
func debtCustomerKey(id string) string { return "debt-customer:" + id }
