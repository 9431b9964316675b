package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("VIDTUBE_SERVER_URL", "https://api.vidtube.example")
	t.Setenv("VIDTUBE_SESSION_FILE", "/var/lib/vidtube/session.db")
	t.Setenv("VIDTUBE_ONLINE_CHECK_INTERVAL", "30s")
	t.Setenv("VIDTUBE_REQUEST_TIMEOUT", "2s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://api.vidtube.example", cfg.ServerURL)
	assert.Equal(t, "/var/lib/vidtube/session.db", cfg.SessionFile)
	assert.Equal(t, 30*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_EmptyKeepsCurrent(t *testing.T) {
	t.Setenv("VIDTUBE_SERVER_URL", "")
	t.Setenv("VIDTUBE_REQUEST_TIMEOUT", "")

	cfg := &Config{ServerURL: "http://keep", RequestTimeout: time.Minute}
	parseEnv(cfg)

	assert.Equal(t, "http://keep", cfg.ServerURL)
	assert.Equal(t, time.Minute, cfg.RequestTimeout)
}

func TestParseEnv_BadDurationPanics(t *testing.T) {
	t.Setenv("VIDTUBE_REQUEST_TIMEOUT", "soon")

	require.PanicsWithError(t, `env VIDTUBE_REQUEST_TIMEOUT: time: invalid duration "soon"`, func() {
		parseEnv(&Config{})
	})
}
