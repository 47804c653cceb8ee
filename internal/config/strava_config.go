package config

type StravaConfig interface {
	GetStravaClientID() string
	GetStravaClientSecret() string
	GetStravaAuthorizeURL() string
	GetStravaTokenURL() string
	GetStravaAPIBaseURL() string
	GetStravaScopes() []string
	GetStravaRedirectURL() string
}

type Strava struct{}

var _ StravaConfig = Strava{}

func (Strava) GetStravaClientID() string {
	return GetEnv("STRAVA_CLIENT_ID", "")
}

// GetStravaClientSecret returns the application secret. It is only ever read
// server-side: the secret must never reach a page or a redirect URL.
func (Strava) GetStravaClientSecret() string {
	return GetEnv("STRAVA_CLIENT_SECRET", "")
}

func (Strava) GetStravaAuthorizeURL() string {
	return GetEnv("STRAVA_AUTHORIZE_URL", "https://www.strava.com/oauth/authorize")
}

func (Strava) GetStravaTokenURL() string {
	return GetEnv("STRAVA_TOKEN_URL", "https://www.strava.com/oauth/token")
}

func (Strava) GetStravaAPIBaseURL() string {
	return GetEnv("STRAVA_API_BASE_URL", "https://www.strava.com/api/v3")
}

func (Strava) GetStravaScopes() []string {
	return []string{"activity:read_all,profile:read_all"}
}

func (Strava) GetStravaRedirectURL() string {
	return EnvVars{}.GetBaseURL() + "/callback"
}
