// Package providers routes completed external logins to per-provider
// enrichment.
//
// Each provider is one strategy behind a common capability interface:
// fetch the provider profile (when tokens allow) and map fields onto
// the persisted user. The registry dispatches by exact provider name;
// providers it doesn't know are skipped, never failed.
package providers

import (
	"context"

	"github.com/dropDatabas3/idbridge/internal/identity"
	"github.com/dropDatabas3/idbridge/internal/store/core"
)

// Provider enriches a user profile from one identity provider's login.
type Provider interface {
	Name() string

	// Populate applies the login's claims and, when credentials allow,
	// freshly fetched provider profile data onto user. Fetch failures
	// are non-fatal: claims-derived fields are still applied and the
	// fetch is simply retried on the next login.
	Populate(ctx context.Context, info *identity.LoginInfo, user *core.UserProfile)
}

// ApplyIdentityClaims maps the standard identity claims onto user:
// external id under the provider's own entry, display name, given
// name and surname. Absent claims leave the field untouched, so
// repeated logins accumulate rather than regress profile completeness.
func ApplyIdentityClaims(provider string, info *identity.LoginInfo, user *core.UserProfile) {
	user.SetProviderUserID(provider, info.Claims.First(identity.ClaimSubject))

	if v := info.Claims.First(identity.ClaimName); v != "" {
		user.DisplayName = v
	}
	if v := info.Claims.First(identity.ClaimGivenName); v != "" {
		user.FirstName = v
	}
	if v := info.Claims.First(identity.ClaimFamilyName); v != "" {
		user.LastName = v
	}
}
