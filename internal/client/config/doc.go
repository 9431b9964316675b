// Package config loads runtime configuration for the vidtube CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment: VIDTUBE_SERVER_URL, VIDTUBE_SESSION_FILE,
//     VIDTUBE_ONLINE_CHECK_INTERVAL, VIDTUBE_REQUEST_TIMEOUT.
//  4. Command-line flags -a, -s, -i, -t.
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "session_file": "vidtube-session.db",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s"
//	}
package config
