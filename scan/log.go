package scan

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/fwojciec/festin"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return discardLogger()
	}
	return logger
}

func orNop(r festin.Recorder) festin.Recorder {
	if r == nil {
		return festin.NopRecorder{}
	}
	return r
}

// failureKind labels a transport failure for logs: "timeout" or "general".
func failureKind(err error) string {
	if festin.ErrorCode(err) == festin.ETIMEOUT || errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "general"
}
