// Package facebook enriches user profiles from the Facebook Graph API.
package facebook

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

const ProviderName = "facebook"

type Provider struct {
	gw gateway.AuthGateway
}

func New(gw gateway.AuthGateway) *Provider {
	return &Provider{gw: gw}
}

func (p *Provider) Name() string { return ProviderName }

// profile is the Graph /me response with picture field expansion.
// The picture URL sits under picture.data.url.
type profile struct {
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

func (p *Provider) Populate(ctx context.Context, info *identity.LoginInfo, user *core.UserProfile) {
	providers.ApplyIdentityClaims(ProviderName, info, user)

	prof, ok := p.fetchProfile(ctx, info)
	if !ok {
		return
	}
	if u := prof.Picture.Data.URL; u != "" {
		user.ProfileURL = identity.SanitizeOAuthURL(u)
	}
}

func (p *Provider) fetchProfile(ctx context.Context, info *identity.LoginInfo) (*profile, bool) {
	accessToken, ok := info.Tokens.First(identity.TokenAccess)
	if !ok {
		return nil, false
	}

	raw, err := p.gw.FacebookUserInfo(ctx, accessToken, "picture")
	if err != nil {
		metrics.ProviderFetches.WithLabelValues(ProviderName, "error").Inc()
		logger.From(ctx).Warn("facebook profile fetch failed", logger.Provider(ProviderName), logger.Err(err))
		return nil, false
	}

	var prof profile
	if err := json.Unmarshal(raw, &prof); err != nil {
		metrics.ProviderFetches.WithLabelValues(ProviderName, "error").Inc()
		logger.From(ctx).Warn("facebook profile parse failed", logger.Provider(ProviderName), logger.Err(err))
		return nil, false
	}
	metrics.ProviderFetches.WithLabelValues(ProviderName, "ok").Inc()
	return &prof, true
}
