package testutil

import (
	"io"
	"log/slog"
)

// NoopLogger returns a logger that discards everything, for wiring components
// under test.
func NoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}
