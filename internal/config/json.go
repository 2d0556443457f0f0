package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sakanapp/sakan/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// are plain strings in Go syntax ("5s", "1m") so config files stay
// readable.
type JsonConfig struct {
	DatabasePath   string `json:"database_path"`
	ProxyEndpoint  string `json:"proxy_endpoint"`
	ProxyAPIKey    string `json:"proxy_api_key"`
	RequestTimeout string `json:"request_timeout"`
	DrainInterval  string `json:"drain_interval"`
}

// parseJson overlays Config with values from the JSON file named by the
// -c/-config flags. No flag, no file, nothing happens. Read or unmarshal
// errors panic; config is loaded once at startup and a broken file should
// be loud.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.ProxyEndpoint != "" {
		cfg.ProxyEndpoint = jc.ProxyEndpoint
	}
	if jc.ProxyAPIKey != "" {
		cfg.ProxyAPIKey = jc.ProxyAPIKey
	}
	if jc.RequestTimeout != "" {
		if d, err := time.ParseDuration(jc.RequestTimeout); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if jc.DrainInterval != "" {
		if d, err := time.ParseDuration(jc.DrainInterval); err == nil {
			cfg.DrainInterval = d
		}
	}
}
