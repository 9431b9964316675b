// Package cli provides the interactive vidtube command-line client.
//
// It wires configuration, the local session store, the REST client and an
// interactive REPL. Typical flow: restore a saved session if there is one,
// start a background connectivity watcher, and execute user commands.
//
// Commands:
//   - login: authenticate by email or username with a hidden password prompt
//   - whoami: show the current user, refreshing an expired access token
//   - refresh: rotate the token pair
//   - logout: end the session on the server and locally
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
