package gateway

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Minimal OAuth 1.0a HMAC-SHA1 signing, enough for Twitter's v1.1 API.
// Only the Authorization header form is produced.

type oauth1Creds struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string
}

func oauth1Header(method, rawURL string, query url.Values, c oauth1Creds) string {
	oauth := map[string]string{
		"oauth_consumer_key":     c.ConsumerKey,
		"oauth_nonce":            nonce(),
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        fmt.Sprintf("%d", time.Now().Unix()),
		"oauth_token":            c.Token,
		"oauth_version":          "1.0",
	}

	// Parameter string: oauth params + query params, percent-encoded,
	// sorted by encoded key.
	params := make([]string, 0, len(oauth)+len(query))
	for k, v := range oauth {
		params = append(params, percentEncode(k)+"="+percentEncode(v))
	}
	for k, vs := range query {
		for _, v := range vs {
			params = append(params, percentEncode(k)+"="+percentEncode(v))
		}
	}
	sort.Strings(params)

	base := method + "&" + percentEncode(rawURL) + "&" + percentEncode(strings.Join(params, "&"))
	key := percentEncode(c.ConsumerSecret) + "&" + percentEncode(c.TokenSecret)

	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	oauth["oauth_signature"] = base64.StdEncoding.EncodeToString(mac.Sum(nil))

	keys := make([]string, 0, len(oauth))
	for k := range oauth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("OAuth ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(percentEncode(k))
		b.WriteString(`="`)
		b.WriteString(percentEncode(oauth[k]))
		b.WriteString(`"`)
	}
	return b.String()
}

func nonce() string {
	var buf [16]byte
	_, _ = rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}

// percentEncode escapes per RFC 3986 §2.1 (OAuth1 requires %20 for
// spaces, unlike url.QueryEscape).
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		default:
			b.WriteString(fmt.Sprintf("%%%02X", c))
		}
	}
	return b.String()
}
