package config

type Config interface {
	EnvConfig
	StravaConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetBaseURL() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Strava
	Security
}

func New() Config {
	return mainConfig{}
}
