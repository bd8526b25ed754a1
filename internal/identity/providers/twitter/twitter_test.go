package twitter

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/idbridge/internal/identity"
	"github.com/dropDatabas3/idbridge/internal/identity/gateway"
	"github.com/dropDatabas3/idbridge/internal/store/core"
)

type fakeGateway struct {
	calls int
	resp  []byte
	err   error
	got   gateway.TwitterLookup
}

func (f *fakeGateway) TwitterUserInfo(_ context.Context, lk gateway.TwitterLookup) ([]byte, error) {
	f.calls++
	f.got = lk
	return f.resp, f.err
}
func (f *fakeGateway) FacebookUserInfo(context.Context, string, ...string) ([]byte, error) {
	return nil, errors.New("unexpected")
}
func (f *fakeGateway) GoogleUserInfo(context.Context, string) ([]byte, error) {
	return nil, errors.New("unexpected")
}
func (f *fakeGateway) MicrosoftPhotoURL(string, string) string { return "" }

func loginInfo(tokens identity.Tokens) *identity.LoginInfo {
	return &identity.LoginInfo{
		Provider: ProviderName,
		Claims:   identity.Claims{{Type: identity.ClaimSubject, Value: "42"}},
		Tokens:   tokens,
	}
}

func TestPopulate_FetchSuccess(t *testing.T) {
	gw := &fakeGateway{
		resp: []byte(`[{"name":"Jane Doe","screen_name":"jdoe","profile_image_url":"http://x/img.png?size=l"}]`),
	}
	p := New("ck", "cs", gw)

	var user core.UserProfile
	p.Populate(context.Background(), loginInfo(identity.Tokens{
		{Name: identity.TokenAccess, Value: "at"},
		{Name: identity.TokenAccessSecret, Value: "ats"},
	}), &user)

	if user.ProviderUserIDs[ProviderName] != "42" {
		t.Fatalf("external id: got %q", user.ProviderUserIDs[ProviderName])
	}
	if user.DisplayName != "Jane Doe" {
		t.Fatalf("display name: got %q", user.DisplayName)
	}
	if user.TwitterScreenName != "jdoe" {
		t.Fatalf("screen name: got %q", user.TwitterScreenName)
	}
	if want := identity.SanitizeOAuthURL("http://x/img.png?size=l"); user.ProfileURL != want {
		t.Fatalf("profile url: got %q, want %q", user.ProfileURL, want)
	}
	if gw.got.ConsumerKey != "ck" || gw.got.AccessToken != "at" || gw.got.UserID != "42" {
		t.Fatalf("gateway credentials not forwarded: %+v", gw.got)
	}
}

func TestPopulate_NoTokens_SkipsFetch(t *testing.T) {
	gw := &fakeGateway{}
	p := New("ck", "cs", gw)

	var user core.UserProfile
	p.Populate(context.Background(), loginInfo(nil), &user)

	if gw.calls != 0 {
		t.Fatalf("fetcher must not run without tokens, got %d calls", gw.calls)
	}
	// el id externo viene de claims y sobrevive sin fetch
	if user.ProviderUserIDs[ProviderName] != "42" {
		t.Fatalf("external id should come from claims, got %q", user.ProviderUserIDs[ProviderName])
	}
	if user.DisplayName != "" || user.ProfileURL != "" {
		t.Fatalf("fetch-derived fields must stay empty: %+v", user)
	}
}

func TestPopulate_MissingSecret_SkipsFetch(t *testing.T) {
	gw := &fakeGateway{}
	p := New("ck", "cs", gw)

	var user core.UserProfile
	p.Populate(context.Background(), loginInfo(identity.Tokens{
		{Name: identity.TokenAccess, Value: "at"},
	}), &user)

	if gw.calls != 0 {
		t.Fatalf("fetcher must not run without the token secret")
	}
}

func TestPopulate_FetchFailure_NonFatal(t *testing.T) {
	gw := &fakeGateway{err: errors.New("timeout")}
	p := New("ck", "cs", gw)

	var user core.UserProfile
	user.DisplayName = "prior"
	p.Populate(context.Background(), loginInfo(identity.Tokens{
		{Name: identity.TokenAccess, Value: "at"},
		{Name: identity.TokenAccessSecret, Value: "ats"},
	}), &user)

	if user.ProviderUserIDs[ProviderName] != "42" {
		t.Fatalf("external id must be set regardless of fetch failure")
	}
	if user.DisplayName != "prior" {
		t.Fatalf("fetch failure must not touch existing fields, got %q", user.DisplayName)
	}
}

func TestPopulate_EmptyArrayResponse(t *testing.T) {
	gw := &fakeGateway{resp: []byte(`[]`)}
	p := New("ck", "cs", gw)

	var user core.UserProfile
	p.Populate(context.Background(), loginInfo(identity.Tokens{
		{Name: identity.TokenAccess, Value: "at"},
		{Name: identity.TokenAccessSecret, Value: "ats"},
	}), &user)

	if user.DisplayName != "" {
		t.Fatalf("empty lookup response must not map fields")
	}
}
