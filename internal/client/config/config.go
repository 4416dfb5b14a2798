package config

import "time"

// Config holds runtime settings for the Monica CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the Monica REST API, including the /api
//     prefix.
//   - DatabasePath: path of the local SQLite mirror.
//   - HTTPTimeout: per-request timeout of the API client.
//   - PerPage: page size requested from list endpoints.
//   - OnlineCheckInterval: how often the client probes server reachability.
type Config struct {
	ServerBaseURL       string
	DatabasePath        string
	HTTPTimeout         time.Duration
	PerPage             int
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults. The hosted Monica
// instance is the default server; self-hosted users override it.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "https://app.monicahq.com/api"
	c.DatabasePath = "monicli.db"
	c.HTTPTimeout = 10 * time.Second
	c.PerPage = 50
	c.OnlineCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
