package calendar

import "errors"

var (
	// ErrNotConnected means the user has no calendar credential on file.
	ErrNotConnected = errors.New("calendar not connected")
	// ErrReauthRequired means the stored grant is revoked or unusable.
	ErrReauthRequired = errors.New("calendar reauthorization required")
	// ErrTransient wraps a single failed remote call; other calls may still succeed.
	ErrTransient = errors.New("calendar call failed")
	// ErrStateNotFound means an OAuth state is unknown or expired.
	ErrStateNotFound = errors.New("oauth state not found")
)
