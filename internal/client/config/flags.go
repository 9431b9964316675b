package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/vidtube/internal/flagx"
)

// parseFlags overlays Config with command-line flags:
//
//	-a url        base URL of the REST API
//	-s path       session file
//	-i seconds    online check interval
//	-t duration   request timeout, e.g. 5s
//
// Only these flags are looked at, so -c / -config and anything else on the
// command line is ignored here. Malformed values panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-i", "-t"})

	fs := flag.NewFlagSet("vidtube-cli", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the vidtube server")
	fs.StringVar(&cfg.SessionFile, "s", cfg.SessionFile, "session file")
	checkSeconds := fs.Int("i", int(cfg.OnlineCheckInterval/time.Second), "online check interval (in seconds)")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*checkSeconds) * time.Second
}
