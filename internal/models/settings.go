package models

// SMSSettings configures the outbound SMS proxy. ProxyEndpoint empty means
// SMS (and remote resident sync) run in local-only mode.
type SMSSettings struct {
	Enabled       bool   `json:"enabled"`
	Provider      string `json:"provider"`
	Sender        string `json:"sender"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	ProxyEndpoint string `json:"proxyEndpoint"`
	APIKey        string `json:"apiKey"`
}

// Settings is the singleton configuration mapping. It is not a table; the
// store keeps exactly one row for it and merges partial updates the same way
// record updates do.
type Settings struct {
	BuildingName     string      `json:"buildingName"`
	Address          string      `json:"address"`
	Currency         string      `json:"currency"`
	Theme            string      `json:"theme"`
	ContractWarnDays int         `json:"contractWarnDays"`
	SMS              SMSSettings `json:"sms"`
}

// DefaultSettings are applied on first run and after ClearAllData.
func DefaultSettings() Settings {
	return Settings{
		Currency:         "SAR",
		Theme:            "light",
		ContractWarnDays: 30,
		SMS:              SMSSettings{Provider: "proxy"},
	}
}
