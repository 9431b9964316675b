package config

import (
	"fmt"
	"os"
	"time"
)

// parseEnv overlays values from VIDTUBE_* environment variables. Durations
// use Go syntax ("5s", "1m"); a malformed one panics like a malformed flag.
func parseEnv(cfg *Config) {
	if v := os.Getenv("VIDTUBE_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("VIDTUBE_SESSION_FILE"); v != "" {
		cfg.SessionFile = v
	}
	envDuration("VIDTUBE_ONLINE_CHECK_INTERVAL", &cfg.OnlineCheckInterval)
	envDuration("VIDTUBE_REQUEST_TIMEOUT", &cfg.RequestTimeout)
}

func envDuration(name string, dst *time.Duration) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("env %s: %w", name, err))
	}
	*dst = d
}
