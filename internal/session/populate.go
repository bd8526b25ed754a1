package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/idbridge/internal/cache"
	"github.com/dropDatabas3/idbridge/internal/metrics"
	"github.com/dropDatabas3/idbridge/internal/observability/logger"
	"github.com/dropDatabas3/idbridge/internal/store/core"
)

// DefaultTTL bounds how stale a session's view of the user store may
// get before the snapshot is recomputed.
const DefaultTTL = 5 * time.Minute

// Populator enriches sessions via cache-aside reads of the user store.
// Safe for concurrent use across unrelated sessions; duplicate loads
// on a racing miss are wasted work, not incorrect (snapshot reads have
// no side effects).
type Populator struct {
	cache cache.Cache
	users core.UserRepository
	roles core.RoleRepository
	ttl   time.Duration
}

func NewPopulator(c cache.Cache, users core.UserRepository, roles core.RoleRepository) *Populator {
	return &Populator{cache: c, users: users, roles: roles, ttl: DefaultTTL}
}

// WithTTL overrides the snapshot TTL. Zero or negative keeps the default.
func (p *Populator) WithTTL(d time.Duration) *Populator {
	if d > 0 {
		p.ttl = d
	}
	return p
}

// Populate fills sess from the cached user snapshot and role set.
//
// Merge policy, per field class:
//   - scalar identity fields (email, first/last/display name):
//     fill-if-empty — a non-empty session value is never clobbered;
//   - roles and profile picture: always overwritten — they reflect
//     current authoritative state, not login-time state.
//
// Store read failures propagate; the caller decides whether to fail
// the request.
func (p *Populator) Populate(ctx context.Context, sess *Session, userID string) error {
	start := time.Now()
	defer func() {
		metrics.PopulateLatency.Observe(float64(time.Since(start).Milliseconds()))
	}()

	user, err := cache.GetOrCreate(p.cache, core.UserCacheKey(userID), p.ttl, func() (*core.UserProfile, error) {
		return p.users.GetByID(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("load user snapshot: %w", err)
	}

	roles, err := cache.GetOrCreate(p.cache, core.RolesCacheKey(userID), p.ttl, func() ([]string, error) {
		return p.roles.RolesByUserID(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("load roles: %w", err)
	}

	fillIfEmpty(&sess.Email, user.Email)
	fillIfEmpty(&sess.FirstName, user.FirstName)
	fillIfEmpty(&sess.LastName, user.LastName)
	fillIfEmpty(&sess.DisplayName, user.DisplayName)

	sess.ProfileURL = user.ProfileURL
	if sess.ProfileURL == "" {
		sess.ProfileURL = DefaultProfileURL
	}
	sess.Roles = roles

	logger.From(ctx).Debug("session populated",
		logger.SessionID(sess.ID), logger.UserID(userID))
	return nil
}

// fillIfEmpty assigns v only when dst is currently empty.
func fillIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
