package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"strings"
)

// getStatus renders the prompt badge, e.g. "(alice online)".
func (a *App) getStatus() string {
	var parts []string
	if a.userName != "" {
		parts = append(parts, a.userName)
	}
	if a.Mode != "" {
		parts = append(parts, string(a.Mode))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Root restores the saved session, starts the connectivity watcher and runs
// the REPL on stdin until the user exits or ctx is cancelled.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to vidtube CLI (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.restoreSession(ctx)
	a.checkOnline(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
