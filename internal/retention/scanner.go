// Package retention finds and removes files older than an age threshold.
package retention

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/autocleaner/autocleaner/internal/models"
)

// Day is the length of one retention day.
const Day = 24 * time.Hour

// Scanner walks directory trees and counts or deletes expired files.
// A Scanner holds no per-folder state and is safe for concurrent use.
type Scanner struct {
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithClock overrides the time source used to compute the threshold.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) { s.now = now }
}

// WithLogger sets the logger that receives skipped-entry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) { s.logger = logger }
}

// New creates a Scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "retention")
	return s
}

// Threshold returns the cutoff for the given age: files modified strictly
// before it are expired.
func (s *Scanner) Threshold(days uint32) time.Time {
	return s.now().Add(-time.Duration(days) * Day)
}

// Scan returns the number of regular files under path whose modification
// time is older than days.
func (s *Scanner) Scan(path string, days uint32) int {
	count := 0
	s.walkExpired(path, days, func(string) {
		count++
	})
	return count
}

// Clean deletes every regular file under path whose modification time is
// older than days and returns how many were removed. Files that cannot be
// removed are skipped.
func (s *Scanner) Clean(path string, days uint32) int {
	return s.CleanExcept(path, days, nil)
}

// CleanExcept is Clean, except that expired files for which keep reports
// true are left in place. A nil keep keeps nothing.
func (s *Scanner) CleanExcept(path string, days uint32, keep func(file string) bool) int {
	removed := 0
	s.walkExpired(path, days, func(file string) {
		if keep != nil && keep(file) {
			return
		}
		if err := os.Remove(file); err != nil {
			s.logger.Debug("skip file: remove failed", "path", file, "error", err)
			return
		}
		removed++
	})
	if removed > 0 {
		s.logger.Info("removed expired files", "path", path, "days", days, "removed", removed)
	}
	return removed
}

// ScanFolders returns the total expired-file count across folders.
func (s *Scanner) ScanFolders(folders []models.TrackedFolder) int {
	total := 0
	for _, f := range folders {
		total += s.Scan(f.Path, f.Days)
	}
	return total
}

// CleanFolders cleans every folder and returns the total removed.
func (s *Scanner) CleanFolders(folders []models.TrackedFolder) int {
	total := 0
	for _, f := range folders {
		total += s.Clean(f.Path, f.Days)
	}
	return total
}

// walkExpired calls fn for each expired regular file under root.
// Symlinks are not followed, so cycles cannot occur. Unreadable entries are
// skipped and never abort the walk.
func (s *Scanner) walkExpired(root string, days uint32, fn func(path string)) {
	threshold := s.Threshold(days)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Debug("skip entry: walk error", "path", path, "error", err)
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			s.logger.Debug("skip file: no modification time", "path", path, "error", err)
			return nil
		}
		if info.ModTime().Before(threshold) {
			fn(path)
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("walk aborted", "root", root, "error", err)
	}
}
