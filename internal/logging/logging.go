// Package logging builds the slog loggers used by every role.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Options describes logger construction parameters.
type Options struct {
	Dir     string    // directory receiving <role>.log; empty disables the file
	Role    string    // role name, used as file name and "role" attribute
	Level   string    // "debug" | "info" | "warn" | "error"
	Console io.Writer // optional second sink, e.g. stderr when it is a terminal
}

// New constructs a text logger writing to <Dir>/<Role>.log and Console.
// The returned closer releases the log file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log dir %s: %w", opts.Dir, err)
		}
		path := filepath.Join(opts.Dir, FileName(opts.Role))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		// An opened log is live even before its first record.
		now := time.Now()
		_ = os.Chtimes(path, now, now)
		writers = append(writers, f)
		closer = f
	}
	if opts.Console != nil {
		writers = append(writers, opts.Console)
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(opts.Level)})
	logger := slog.New(handler)
	if opts.Role != "" {
		logger = logger.With("role", opts.Role, "pid", os.Getpid())
	}
	return logger, closer, nil
}

// FileName is the log file name for role.
func FileName(role string) string {
	if role == "" {
		role = "autocleaner"
	}
	return role + ".log"
}

// Cleaner removes expired files below a directory, sparing those keep
// reports true for.
type Cleaner interface {
	CleanExcept(root string, days uint32, keep func(file string) bool) int
}

// Prune removes logs in dir not written for longer than days and returns
// how many were removed. The logs of the live roles are kept whatever their
// age, since their owners still append to them. Zero days keeps everything.
func Prune(dir string, days uint32, c Cleaner, live ...string) int {
	if days == 0 {
		return 0
	}
	keep := make(map[string]bool, len(live))
	for _, role := range live {
		keep[filepath.Join(dir, FileName(role))] = true
	}
	return c.CleanExcept(dir, days, func(file string) bool {
		return keep[filepath.Clean(file)]
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
