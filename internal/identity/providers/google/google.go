// Package google enriches user profiles from the Google userinfo API.
package google

import (
	"context"
	"encoding/json"

	"github.com/dropDatabas3/idbridge/internal/identity"
	"github.com/dropDatabas3/idbridge/internal/identity/gateway"
	"github.com/dropDatabas3/idbridge/internal/identity/providers"
	"github.com/dropDatabas3/idbridge/internal/metrics"
	"github.com/dropDatabas3/idbridge/internal/observability/logger"
	"github.com/dropDatabas3/idbridge/internal/store/core"
)

const ProviderName = "google"

type Provider struct {
	gw gateway.AuthGateway
}

func New(gw gateway.AuthGateway) *Provider {
	return &Provider{gw: gw}
}

func (p *Provider) Name() string { return ProviderName }

type profile struct {
	Picture string `json:"picture"`
}

func (p *Provider) Populate(ctx context.Context, info *identity.LoginInfo, user *core.UserProfile) {
	providers.ApplyIdentityClaims(ProviderName, info, user)

	// Google's legacy profile-page claim, when the middleware emits it.
	if v := info.Claims.First(identity.ClaimGoogleProfilePage); v != "" {
		user.GoogleProfilePage = v
	}

	prof, ok := p.fetchProfile(ctx, info)
	if !ok {
		return
	}
	if prof.Picture != "" {
		user.ProfileURL = identity.SanitizeOAuthURL(prof.Picture)
	}
}

func (p *Provider) fetchProfile(ctx context.Context, info *identity.LoginInfo) (*profile, bool) {
	accessToken, ok := info.Tokens.First(identity.TokenAccess)
	if !ok {
		return nil, false
	}

	raw, err := p.gw.GoogleUserInfo(ctx, accessToken)
	if err != nil {
		metrics.ProviderFetches.WithLabelValues(ProviderName, "error").Inc()
		logger.From(ctx).Warn("google profile fetch failed", logger.Provider(ProviderName), logger.Err(err))
		return nil, false
	}

	var prof profile
	if err := json.Unmarshal(raw, &prof); err != nil {
		metrics.ProviderFetches.WithLabelValues(ProviderName, "error").Inc()
		logger.From(ctx).Warn("google profile parse failed", logger.Provider(ProviderName), logger.Err(err))
		return nil, false
	}
	metrics.ProviderFetches.WithLabelValues(ProviderName, "ok").Inc()
	return &prof, true
}
