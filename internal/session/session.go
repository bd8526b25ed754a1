// Package session fills authenticated session records from a cached,
// time-bounded read of the user store.
package session

// Session is the per-request session record. It is owned by the
// session/cookie transport layer; this package only populates it.
type Session struct {
	ID          string   `json:"id"`
	Email       string   `json:"email,omitempty"`
	FirstName   string   `json:"first_name,omitempty"`
	LastName    string   `json:"last_name,omitempty"`
	DisplayName string   `json:"display_name,omitempty"`
	ProfileURL  string   `json:"profile_url,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

// DefaultProfileURL is the placeholder avatar applied when the user
// snapshot carries no picture. Inline data URI so no asset pipeline
// is involved.
const DefaultProfileURL = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 24 24'%3E%3Cpath d='M12 12c2.76 0 5-2.24 5-5s-2.24-5-5-5-5 2.24-5 5 2.24 5 5 5zm0 2c-3.34 0-10 1.67-10 5v3h20v-3c0-3.33-6.66-5-10-5z'/%3E%3C/svg%3E"
