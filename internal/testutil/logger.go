package testutil

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/dtroode/georegions-server/internal/logger"
)

// MakeNoopLogger returns a logger that discards every record.
func MakeNoopLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))}
}

// MakeBufferLogger returns a JSON logger at level together with the buffer it
// writes to, one record per line.
func MakeBufferLogger(level slog.Level) (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.NewWithWriter(&buf, int(level), "json"), &buf
}
