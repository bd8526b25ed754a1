// Package identity models a completed external login handshake: the
// claims asserted by the provider and the tokens issued during the
// exchange. The handshake itself (redirects, code exchange) happens
// upstream; this package only consumes its result.
package identity

// Claim types emitted by the upstream handshake middleware.
// OIDC-style names; ClaimGoogleProfilePage is Google's legacy
// profile-page claim carried through as-is.
const (
	ClaimSubject           = "sub"
	ClaimName              = "name"
	ClaimGivenName         = "given_name"
	ClaimFamilyName        = "family_name"
	ClaimEmail             = "email"
	ClaimGoogleProfilePage = "urn:google:profile"
)

// Token names used by the providers this service enriches from.
const (
	TokenAccess       = "access_token"
	TokenAccessSecret = "access_token_secret"
)

// Claim is a typed key/value asserted about the principal.
type Claim struct {
	Type  string
	Value string
}

// Claims is the claim set of a login. Lookup is by exact type match.
type Claims []Claim

// First returns the value of the first claim of the given type, or ""
// if the claim is absent. Absence is not an error.
func (cs Claims) First(typ string) string {
	for _, c := range cs {
		if c.Type == typ {
			return c.Value
		}
	}
	return ""
}

// Token is a named credential issued during the handshake.
type Token struct {
	Name  string
	Value string
}

// Tokens preserves the order in which tokens were issued. It is a
// list, not a map: duplicate names keep first-wins semantics.
type Tokens []Token

// First returns the value of the first token with the given name and
// whether it was present. Callers treat absence as "skip the
// enrichment that needs this token".
func (ts Tokens) First(name string) (string, bool) {
	for _, t := range ts {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// LoginInfo is the immutable input of the enrichment pipeline: one
// completed external login. Consumed exactly once by the provider
// registry, then discarded.
type LoginInfo struct {
	// Provider is the exact identifier of the identity provider
	// ("twitter", "facebook", "google", "microsoft", ...).
	Provider string
	Claims   Claims
	Tokens   Tokens
}
