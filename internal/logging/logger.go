// Package logging holds the Logger interface shared by the server packages
// and its log/slog implementation.
package logging

import "context"

// Logger writes structured records. args are alternating key/value pairs:
//
//	log.Info(ctx, "video published", "video_id", id)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn is for failures the request survives, like a leftover blob.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every record.
	With(args ...any) Logger
}
