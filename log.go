package dials

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// SetLogger sets the logger used for warnings about rejected input and
// defaulted configuration. nil restores slog.Default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func packageLogger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}
