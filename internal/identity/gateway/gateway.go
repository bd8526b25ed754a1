// Package gateway performs the outbound HTTP calls to provider APIs.
//
// Each provider exposes a different auth scheme and JSON shape:
// Twitter wants an OAuth1-signed request, Facebook and Google take a
// bearer/query access token, Microsoft Graph photos are addressed by
// URL without downloading bytes. The AuthGateway interface isolates
// all of that so the field mappers never see transport details and
// tests can substitute deterministic fakes.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AuthGateway is the outbound boundary of the enrichment pipeline.
type AuthGateway interface {
	// TwitterUserInfo calls users/lookup.json with an OAuth1-signed
	// request. The response is a JSON array.
	TwitterUserInfo(ctx context.Context, req TwitterLookup) ([]byte, error)

	// FacebookUserInfo calls the Graph API /me with field expansion.
	FacebookUserInfo(ctx context.Context, accessToken string, fields ...string) ([]byte, error)

	// GoogleUserInfo calls the userinfo endpoint with a bearer token.
	GoogleUserInfo(ctx context.Context, accessToken string) ([]byte, error)

	// MicrosoftPhotoURL builds the Graph photo URL for the given size.
	// No request is made; the URL itself is the enrichment result.
	MicrosoftPhotoURL(accessToken, size string) string
}

// TwitterLookup carries the credentials for one Twitter lookup call.
type TwitterLookup struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
	UserID            string
}

const defaultTimeout = 10 * time.Second

// Default endpoints. Overridable on HTTPGateway for tests.
const (
	twitterLookupURL    = "https://api.twitter.com/1.1/users/lookup.json"
	facebookGraphURL    = "https://graph.facebook.com/v3.2/me"
	googleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
	microsoftGraphPhoto = "https://graph.microsoft.com/v1.0/me/photos/%s/$value"
)

// HTTPGateway implements AuthGateway over net/http.
type HTTPGateway struct {
	TwitterURL  string
	FacebookURL string
	GoogleURL   string

	http *http.Client
}

// New creates a gateway with the production endpoints and a bounded
// request timeout so a slow provider cannot hang the login flow.
func New() *HTTPGateway {
	return &HTTPGateway{
		TwitterURL:  twitterLookupURL,
		FacebookURL: facebookGraphURL,
		GoogleURL:   googleUserInfoURL,
		http:        &http.Client{Timeout: defaultTimeout},
	}
}

func (g *HTTPGateway) TwitterUserInfo(ctx context.Context, lk TwitterLookup) ([]byte, error) {
	q := url.Values{}
	q.Set("user_id", lk.UserID)

	req, err := http.NewRequestWithContext(ctx, "GET", g.TwitterURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", oauth1Header("GET", g.TwitterURL, q, oauth1Creds{
		ConsumerKey:    lk.ConsumerKey,
		ConsumerSecret: lk.ConsumerSecret,
		Token:          lk.AccessToken,
		TokenSecret:    lk.AccessTokenSecret,
	}))
	return g.do(req, "twitter")
}

func (g *HTTPGateway) FacebookUserInfo(ctx context.Context, accessToken string, fields ...string) ([]byte, error) {
	q := url.Values{}
	q.Set("access_token", accessToken)
	if len(fields) > 0 {
		q.Set("fields", strings.Join(fields, ","))
	}
	req, err := http.NewRequestWithContext(ctx, "GET", g.FacebookURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return g.do(req, "facebook")
}

func (g *HTTPGateway) GoogleUserInfo(ctx context.Context, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", g.GoogleURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return g.do(req, "google")
}

func (g *HTTPGateway) MicrosoftPhotoURL(accessToken, size string) string {
	if size == "" {
		size = "96x96"
	}
	return fmt.Sprintf(microsoftGraphPhoto, size)
}

func (g *HTTPGateway) do(req *http.Request, provider string) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	resp, err := g.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%s api error: status %d", provider, resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s api read: %w", provider, err)
	}
	return b, nil
}
