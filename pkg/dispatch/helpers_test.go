package dispatch

import (
	"io"
	"log/slog"
)

func newJSONLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// resetShared clears the shared registry between tests.
func resetShared() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	shared = nil
}
