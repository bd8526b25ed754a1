package core

import "time"

// UserProfile is the persisted user record enriched by external
// logins. Created on first successful login for a provider identity,
// then mutated by each provider's field mapper on every login.
type UserProfile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// ProviderUserIDs maps provider name to the external user id.
	// Each provider writes only its own entry.
	ProviderUserIDs map[string]string `json:"provider_user_ids,omitempty"`

	// Provider-specific extras that don't fit the common shape.
	TwitterScreenName string `json:"twitter_screen_name,omitempty"`
	GoogleProfilePage string `json:"google_profile_page,omitempty"`

	// ProfileURL is the sanitized profile picture URL. Unlike the
	// scalar fields above it is overwritten whenever a login yields a
	// fresh picture.
	ProfileURL string `json:"profile_url,omitempty"`
}

// SetProviderUserID records the external id for one provider without
// touching other providers' entries.
func (u *UserProfile) SetProviderUserID(provider, externalID string) {
	if externalID == "" {
		return
	}
	if u.ProviderUserIDs == nil {
		u.ProviderUserIDs = make(map[string]string, 1)
	}
	u.ProviderUserIDs[provider] = externalID
}
