package config

import "time"

type SecurityConfig interface {
	GetSessionSecret() string
	GetSessionTTL() time.Duration
	GetAuthFlowTimeout() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetSessionSecret returns the HMAC key used to sign the login session cookie.
// The default is only suitable for local development.
func (Security) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "dev-only-insecure-session-secret")
}

func (Security) GetSessionTTL() time.Duration {
	return 30 * 24 * time.Hour
}

// GetAuthFlowTimeout bounds how long a pending authorization redirect stays
// redeemable before its state token is considered stale.
func (Security) GetAuthFlowTimeout() time.Duration {
	return 15 * time.Minute
}
