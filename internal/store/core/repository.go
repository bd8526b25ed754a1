package core

import "context"

// UserRepository is the persistence boundary for user profiles.
// Read/write failures propagate to the caller; the enrichment core
// never retries internally.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*UserProfile, error)
	Update(ctx context.Context, u *UserProfile) error

	// EnsureByProviderID returns the user owning the given provider
	// identity, creating the row on first login.
	EnsureByProviderID(ctx context.Context, provider, externalID, email string) (*UserProfile, error)
}

// RoleRepository looks up role memberships.
type RoleRepository interface {
	RolesByUserID(ctx context.Context, id string) ([]string, error)
}
