package config

const (
	defaultHost      = "http://localhost:8080"
	defaultEndpoint  = "/"
	defaultStrategy  = "POSTGRES"
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// Default returns configuration defaults
func Default() Config {
	return Config{
		Host:     defaultHost,
		Endpoint: defaultEndpoint,
		Strategy: defaultStrategy,
		Synced:   true,
		Log: Log{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
