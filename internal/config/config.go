// Package config assembles runtime settings for binaries embedding the data
// core. Layers apply in order (defaults, environment with .env honoured,
// JSON file, command-line flags) with later layers winning.
package config

import "time"

// Config holds runtime settings for the data core.
//
// ProxyEndpoint empty means local-only mode: mutations apply directly to
// the store and nothing is ever queued.
type Config struct {
	DatabasePath        string
	ProxyEndpoint       string
	ProxyAPIKey         string
	RequestTimeout      time.Duration
	DrainInterval       time.Duration
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "sakan.db"
	c.ProxyEndpoint = ""
	c.RequestTimeout = 5 * time.Second
	c.DrainInterval = 60 * time.Second
	c.OnlineCheckInterval = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if -c/-config points at one) and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
