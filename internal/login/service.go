// Package login runs the external login enrichment pipeline: one
// completed handshake in, one provisioned and enriched user out.
package login

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/idbridge/internal/identity"
	"github.com/dropDatabas3/idbridge/internal/identity/providers"
	"github.com/dropDatabas3/idbridge/internal/observability/logger"
	"github.com/dropDatabas3/idbridge/internal/store/core"
)

// Service consumes completed external logins.
type Service struct {
	users    core.UserRepository
	registry *providers.Registry
}

func NewService(users core.UserRepository, registry *providers.Registry) *Service {
	return &Service{users: users, registry: registry}
}

// Complete provisions the user on first login, dispatches provider
// enrichment onto the profile, and persists it. Store errors
// propagate to the caller; enrichment failures never fail the login —
// the profile just keeps whatever the claims alone could fill.
func (s *Service) Complete(ctx context.Context, info *identity.LoginInfo) (*core.UserProfile, error) {
	sub := info.Claims.First(identity.ClaimSubject)
	email := info.Claims.First(identity.ClaimEmail)

	user, err := s.users.EnsureByProviderID(ctx, info.Provider, sub, email)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	s.registry.Dispatch(ctx, info, user)

	if user.Email == "" && email != "" {
		user.Email = email
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	logger.From(ctx).Info("external login completed",
		logger.Provider(info.Provider), logger.UserID(user.ID))
	return user, nil
}
