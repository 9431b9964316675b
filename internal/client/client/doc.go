// Package client contains the CLI's connection to the vidtube server.
//
// It provides:
//  1. The Client contract and its REST implementation (RESTClient), which
//     unwraps the server's response envelope and reports failures as
//     *APIError values.
//  2. Bootstrap helpers for the local SQLite database (InitDatabase,
//     RunMigrations) that holds the session between runs.
//
// Transport failures wrap ErrUnavailable and 401 responses match
// ErrUnauthorized, so callers can use errors.Is.
package client
