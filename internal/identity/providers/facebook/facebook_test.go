package facebook

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/idbridge/internal/identity"
	"github.com/dropDatabas3/idbridge/internal/identity/gateway"
	"github.com/dropDatabas3/idbridge/internal/store/core"
)

type fakeGateway struct {
	calls  int
	fields []string
	resp   []byte
	err    error
}

func (f *fakeGateway) FacebookUserInfo(_ context.Context, _ string, fields ...string) ([]byte, error) {
	f.calls++
	f.fields = fields
	return f.resp, f.err
}
func (f *fakeGateway) TwitterUserInfo(context.Context, gateway.TwitterLookup) ([]byte, error) {
	return nil, errors.New("unexpected")
}
func (f *fakeGateway) GoogleUserInfo(context.Context, string) ([]byte, error) {
	return nil, errors.New("unexpected")
}
func (f *fakeGateway) MicrosoftPhotoURL(string, string) string { return "" }

func claims() identity.Claims {
	return identity.Claims{
		{Type: identity.ClaimSubject, Value: "fb-1"},
		{Type: identity.ClaimName, Value: "Jane Doe"},
		{Type: identity.ClaimGivenName, Value: "Jane"},
		{Type: identity.ClaimFamilyName, Value: "Doe"},
	}
}

func TestPopulate_NoToken_ClaimsOnly(t *testing.T) {
	gw := &fakeGateway{}
	p := New(gw)

	user := core.UserProfile{ProfileURL: "http://existing/pic.png"}
	p.Populate(context.Background(), &identity.LoginInfo{
		Provider: ProviderName,
		Claims:   claims(),
	}, &user)

	if gw.calls != 0 {
		t.Fatalf("fetcher must not run without an access token")
	}
	if user.ProviderUserIDs[ProviderName] != "fb-1" {
		t.Fatalf("external id: got %q", user.ProviderUserIDs[ProviderName])
	}
	if user.DisplayName != "Jane Doe" || user.FirstName != "Jane" || user.LastName != "Doe" {
		t.Fatalf("claims not mapped: %+v", user)
	}
	// sin fetch la foto queda como estaba
	if user.ProfileURL != "http://existing/pic.png" {
		t.Fatalf("profile url must stay unchanged, got %q", user.ProfileURL)
	}
}

func TestPopulate_PictureExpansion(t *testing.T) {
	gw := &fakeGateway{resp: []byte(`{"picture":{"data":{"url":"http://cdn/p.jpg?oe=sig"}}}`)}
	p := New(gw)

	var user core.UserProfile
	p.Populate(context.Background(), &identity.LoginInfo{
		Provider: ProviderName,
		Claims:   claims(),
		Tokens:   identity.Tokens{{Name: identity.TokenAccess, Value: "tok"}},
	}, &user)

	if len(gw.fields) != 1 || gw.fields[0] != "picture" {
		t.Fatalf("expected picture field expansion, got %v", gw.fields)
	}
	if want := identity.SanitizeOAuthURL("http://cdn/p.jpg?oe=sig"); user.ProfileURL != want {
		t.Fatalf("profile url: got %q, want %q", user.ProfileURL, want)
	}
}

func TestPopulate_FetchFailure_NonFatal(t *testing.T) {
	gw := &fakeGateway{err: errors.New("boom")}
	p := New(gw)

	var user core.UserProfile
	p.Populate(context.Background(), &identity.LoginInfo{
		Provider: ProviderName,
		Claims:   claims(),
		Tokens:   identity.Tokens{{Name: identity.TokenAccess, Value: "tok"}},
	}, &user)

	if user.DisplayName != "Jane Doe" {
		t.Fatalf("claims must still map on fetch failure")
	}
	if user.ProfileURL != "" {
		t.Fatalf("no picture on fetch failure, got %q", user.ProfileURL)
	}
}
