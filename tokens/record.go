package tokens

import "time"

// Record is the persisted token triple. It is written wholesale: a refresh
// overwrites all three fields together.
type Record struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds
}

// Identity is the athlete profile cached alongside the tokens. The ID is also
// recorded as the "last account" for future multi-account support.
type Identity struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	City      string `json:"city"`
	AvatarURL string `json:"profile"`
}

// Expired reports whether the record is stale. A record with no recorded
// expiry (the zero value included) is always treated as expired.
func (r Record) Expired(now time.Time) bool {
	if r.ExpiresAt == 0 {
		return true
	}
	return now.Unix() >= r.ExpiresAt
}
