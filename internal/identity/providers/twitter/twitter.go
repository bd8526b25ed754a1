// Package twitter enriches user profiles from the Twitter v1.1 API.
package twitter

import (
	"context"
	"encoding/json"

	"github.com/dropDatabas3/idbridge/internal/identity"
	"github.com/dropDatabas3/idbridge/internal/identity/gateway"
	"github.com/dropDatabas3/idbridge/internal/metrics"
	"github.com/dropDatabas3/idbridge/internal/observability/logger"
	"github.com/dropDatabas3/idbridge/internal/store/core"
)

const ProviderName = "twitter"

// Provider fetches the Twitter user via an OAuth1-signed lookup call.
// Twitter is the only provider needing app credentials on our side
// (consumer key/secret) in addition to the handshake tokens.
type Provider struct {
	consumerKey    string
	consumerSecret string
	gw             gateway.AuthGateway
}

func New(consumerKey, consumerSecret string, gw gateway.AuthGateway) *Provider {
	return &Provider{consumerKey: consumerKey, consumerSecret: consumerSecret, gw: gw}
}

func (p *Provider) Name() string { return ProviderName }

// profile is the subset of the lookup response we map. The API
// returns a JSON array; only the first element is used.
type profile struct {
	Name            string `json:"name"`
	ScreenName      string `json:"screen_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

func (p *Provider) Populate(ctx context.Context, info *identity.LoginInfo, user *core.UserProfile) {
	// The external id comes from claims and survives fetch failures.
	user.SetProviderUserID(ProviderName, info.Claims.First(identity.ClaimSubject))

	prof, ok := p.fetchProfile(ctx, info)
	if !ok {
		return
	}
	p.mapFields(prof, user)
}

// fetchProfile calls the lookup API. Both the access token and its
// secret are required; if either is absent the fetch is skipped, not
// failed.
func (p *Provider) fetchProfile(ctx context.Context, info *identity.LoginInfo) (*profile, bool) {
	accessToken, ok := info.Tokens.First(identity.TokenAccess)
	if !ok {
		return nil, false
	}
	accessSecret, ok := info.Tokens.First(identity.TokenAccessSecret)
	if !ok {
		return nil, false
	}

	raw, err := p.gw.TwitterUserInfo(ctx, gateway.TwitterLookup{
		ConsumerKey:       p.consumerKey,
		ConsumerSecret:    p.consumerSecret,
		AccessToken:       accessToken,
		AccessTokenSecret: accessSecret,
		UserID:            info.Claims.First(identity.ClaimSubject),
	})
	if err != nil {
		metrics.ProviderFetches.WithLabelValues(ProviderName, "error").Inc()
		logger.From(ctx).Warn("twitter profile fetch failed", logger.Provider(ProviderName), logger.Err(err))
		return nil, false
	}

	var arr []profile
	if err := json.Unmarshal(raw, &arr); err != nil || len(arr) == 0 {
		metrics.ProviderFetches.WithLabelValues(ProviderName, "error").Inc()
		logger.From(ctx).Warn("twitter profile parse failed", logger.Provider(ProviderName), logger.Err(err))
		return nil, false
	}
	metrics.ProviderFetches.WithLabelValues(ProviderName, "ok").Inc()
	return &arr[0], true
}

func (p *Provider) mapFields(prof *profile, user *core.UserProfile) {
	if prof.Name != "" {
		user.DisplayName = prof.Name
	}
	if prof.ScreenName != "" {
		user.TwitterScreenName = prof.ScreenName
	}
	if prof.ProfileImageURL != "" {
		user.ProfileURL = identity.SanitizeOAuthURL(prof.ProfileImageURL)
	}
}
