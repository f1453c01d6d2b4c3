package config

import "os"

type Config struct {
	AppEnv   string
	LogLevel string
}

// Load reads configuration from the environment, falling back to
// defaults suitable for local runs.
func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
