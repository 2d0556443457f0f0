package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables, loading a .env file
// from the working directory first when one exists. Unset variables leave
// the current value alone.
//
// Recognized variables:
//
//	SAKAN_DATABASE        path to the local database file
//	SAKAN_PROXY_ENDPOINT  base URL of the remote proxy
//	SAKAN_PROXY_API_KEY   bearer token for the proxy
//	SAKAN_TIMEOUT         per-attempt network timeout, Go duration syntax
//	SAKAN_DRAIN_INTERVAL  retry queue drain interval, Go duration syntax
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SAKAN_DATABASE"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("SAKAN_PROXY_ENDPOINT"); v != "" {
		cfg.ProxyEndpoint = v
	}
	if v := os.Getenv("SAKAN_PROXY_API_KEY"); v != "" {
		cfg.ProxyAPIKey = v
	}
	if v := os.Getenv("SAKAN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("SAKAN_DRAIN_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.DrainInterval = d
		}
	}
}
