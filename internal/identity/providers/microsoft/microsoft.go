// Package microsoft enriches user profiles from Microsoft Graph.
//
// Unlike the other providers no profile JSON is fetched: the photo is
// addressed by a Graph URL built from the access token's scope, gated
// behind the save_photo config flag.
package microsoft

import (
	"context"

	"github.com/dropDatabas3/idbridge/internal/identity"
	"github.com/dropDatabas3/idbridge/internal/identity/gateway"
	"github.com/dropDatabas3/idbridge/internal/identity/providers"
	"github.com/dropDatabas3/idbridge/internal/store/core"
)

const ProviderName = "microsoft"

type Provider struct {
	savePhoto     bool
	savePhotoSize string
	gw            gateway.AuthGateway
}

func New(savePhoto bool, savePhotoSize string, gw gateway.AuthGateway) *Provider {
	return &Provider{savePhoto: savePhoto, savePhotoSize: savePhotoSize, gw: gw}
}

func (p *Provider) Name() string { return ProviderName }

func (p *Provider) Populate(ctx context.Context, info *identity.LoginInfo, user *core.UserProfile) {
	providers.ApplyIdentityClaims(ProviderName, info, user)

	if !p.savePhoto {
		return
	}
	accessToken, ok := info.Tokens.First(identity.TokenAccess)
	if !ok {
		return
	}
	user.ProfileURL = p.gw.MicrosoftPhotoURL(accessToken, p.savePhotoSize)
}
