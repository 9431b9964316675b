package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	base := Config{
		ServerURL:           "http://127.0.0.1:8000",
		SessionFile:         "vidtube-session.db",
		OnlineCheckInterval: 3 * time.Second,
		RequestTimeout:      10 * time.Second,
	}

	tests := []struct {
		name        string
		args        []string
		want        Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://127.0.0.1:9090", "-s", "/tmp/s.db", "-i", "10", "-t", "750ms"},
			want: Config{ServerURL: "http://127.0.0.1:9090", SessionFile: "/tmp/s.db", OnlineCheckInterval: 10 * time.Second, RequestTimeout: 750 * time.Millisecond},
		},
		{
			name: "no flags keeps values",
			args: []string{"cmd"},
			want: base,
		},
		{
			name: "foreign flags are ignored",
			args: []string{"cmd", "-config", "cli.json", "-x", "-a=http://h:1"},
			want: Config{ServerURL: "http://h:1", SessionFile: base.SessionFile, OnlineCheckInterval: base.OnlineCheckInterval, RequestTimeout: base.RequestTimeout},
		},
		{name: "bad check interval", args: []string{"cmd", "-i", "abc"}, expectPanic: true},
		{name: "bad timeout", args: []string{"cmd", "-t", "10"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			cfg := base

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(&cfg) })
				return
			}
			require.NotPanics(t, func() { parseFlags(&cfg) })
			if diff := cmp.Diff(tt.want, cfg); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
