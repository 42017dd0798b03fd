package domain

import "time"

// Credential is a stored calendar OAuth grant for one user.
type Credential struct {
	UserID       string
	AccessToken  string
	RefreshToken string
	TokenType    string
	Expiry       time.Time
	Scopes       []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ExpiryLeeway is how long before its expiry an access token is already
// treated as expired, so it is not sent moments before it lapses.
const ExpiryLeeway = time.Minute

// Expired reports whether the access token is unusable at now, allowing
// for ExpiryLeeway. Tokens without an expiry never expire.
func (c *Credential) Expired(now time.Time) bool {
	if c.Expiry.IsZero() {
		return false
	}
	return !now.Add(ExpiryLeeway).Before(c.Expiry)
}

// Refreshable reports whether a refresh token is on file.
func (c *Credential) Refreshable() bool {
	return c.RefreshToken != ""
}
