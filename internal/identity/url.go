package identity

import (
	"net/url"
	"strings"
)

// SanitizeOAuthURL canonicalizes a provider-returned URL so the same
// logical image persists as the same string run-to-run: surrounding
// whitespace/quotes are trimmed, JSON-escaped slashes unescaped, and
// query/fragment dropped (providers attach per-request signatures and
// size hints there). Idempotent: sanitizing a sanitized URL is a no-op.
func SanitizeOAuthURL(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	s = strings.ReplaceAll(s, `\/`, "/")
	if s == "" {
		return ""
	}

	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return s
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
