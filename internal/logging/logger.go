// Package logging defines the logging contract used by EdgeBet client
// components and its log/slog implementation.
package logging

import "context"

// Logger is the minimal structured logging surface components depend on.
// Implementations must be safe for concurrent use.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}
