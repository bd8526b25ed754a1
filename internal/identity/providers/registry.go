package providers

import (
	"context"
	"sync"

	"github.com/dropDatabas3/idbridge/internal/identity"
	"github.com/dropDatabas3/idbridge/internal/observability/logger"
	"github.com/dropDatabas3/idbridge/internal/store/core"
)

// Registry holds the fixed set of enrichment providers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty registry. Register each supported
// provider at startup.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider under its own name.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// Names returns the registered provider names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Dispatch routes the login to the provider whose name matches
// info.Provider exactly (case-sensitive). An unknown provider is a
// silent no-op: the login must not fail just because we don't enrich
// from that provider.
func (r *Registry) Dispatch(ctx context.Context, info *identity.LoginInfo, user *core.UserProfile) {
	r.mu.RLock()
	p, ok := r.providers[info.Provider]
	r.mu.RUnlock()
	if !ok {
		logger.From(ctx).Debug("no enrichment provider registered", logger.Provider(info.Provider))
		return
	}
	p.Populate(ctx, info, user)
}
