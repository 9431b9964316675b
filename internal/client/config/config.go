package config

import "time"

// Config holds runtime settings for the vidtube CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API, without the /api/v1 prefix.
//   - SessionFile: SQLite file where the current session is kept between runs.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerURL           string
	SessionFile         string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.SessionFile = "vidtube-session.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig layers defaults, the JSON file, VIDTUBE_* environment variables
// and flags, in that order of increasing precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
