// Package obslog builds this server's event logger: structured logging
// via log/slog, rolled daily to disk via the teacher's own
// go-tools/dailylogger, exactly the way apps/rtcmlogger/main.go wires its
// event log.
package obslog

import (
	"log/slog"
	"os"

	"github.com/goblimey/go-tools/dailylogger"
)

// New builds a daily-rolling text logger under dir, named
// "<prefix>.<date>.log". If dir is empty, logs go to stderr instead (the
// same degrade-to-stderr behavior the teacher uses before its config is
// loaded).
func New(dir, prefix string) *slog.Logger {
	if dir == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	writer := dailylogger.New(dir, prefix+".", ".log")
	return slog.New(slog.NewTextHandler(writer, nil))
}
