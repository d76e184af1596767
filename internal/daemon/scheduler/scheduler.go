// Package scheduler triggers periodic retention passes in the tray agent.
package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler calls a job on a cron schedule. The job only enqueues work for
// the tray loop, so ticks never run retention passes concurrently.
type Scheduler struct {
	job    func()
	logger *slog.Logger

	mu       sync.Mutex
	cron     *cron.Cron
	schedule string
}

// New creates a scheduler for job.
func New(job func(), logger *slog.Logger) *Scheduler {
	return &Scheduler{
		job:    job,
		logger: logger.With("component", "scheduler"),
	}
}

// Reschedule replaces the current schedule. An empty expression stops the
// scheduler. Common expressions:
//   - "0 */6 * * *" - every 6 hours
//   - "@daily"      - once a day at midnight
//   - "@every 30m"  - every 30 minutes
func (s *Scheduler) Reschedule(expr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expr == s.schedule && (s.cron != nil || expr == "") {
		return nil
	}

	var next *cron.Cron
	if expr != "" {
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("invalid cron schedule %q: %w", expr, err)
		}
		next = cron.New()
		if _, err := next.AddFunc(expr, s.job); err != nil {
			return fmt.Errorf("failed to schedule scans: %w", err)
		}
	}

	s.stopLocked()
	s.schedule = expr
	if next == nil {
		s.logger.Info("scheduled scans disabled")
		return nil
	}
	s.cron = next
	s.cron.Start()
	s.logger.Info("scheduled scans enabled", "schedule", expr)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.schedule = ""
}

func (s *Scheduler) stopLocked() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron = nil
}

// NextRun returns the next scheduled time, or nil when disabled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
