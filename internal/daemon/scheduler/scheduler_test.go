package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/autocleaner/autocleaner/internal/logging"
)

func TestRescheduleValidates(t *testing.T) {
	s := New(func() {}, logging.Discard())
	defer s.Stop()

	if err := s.Reschedule("not a schedule"); err == nil {
		t.Fatal("Reschedule() accepted an invalid expression")
	}
	if s.NextRun() != nil {
		t.Error("invalid schedule left the scheduler running")
	}

	if err := s.Reschedule("0 */6 * * *"); err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}
	next := s.NextRun()
	if next == nil {
		t.Fatal("NextRun() = nil after scheduling")
	}
	if !next.After(time.Now()) {
		t.Errorf("NextRun() = %v, want a future time", next)
	}

	if err := s.Reschedule("bogus"); err == nil {
		t.Fatal("Reschedule() accepted an invalid expression")
	}
	if s.NextRun() == nil {
		t.Error("a rejected schedule must keep the previous one")
	}

	if err := s.Reschedule(""); err != nil {
		t.Fatalf("Reschedule(\"\") error = %v", err)
	}
	if s.NextRun() != nil {
		t.Error("empty schedule should disable the scheduler")
	}
}

func TestJobRuns(t *testing.T) {
	var calls atomic.Int32
	s := New(func() { calls.Add(1) }, logging.Discard())
	defer s.Stop()

	if err := s.Reschedule("@every 1s"); err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("job never ran")
		}
		time.Sleep(50 * time.Millisecond)
	}
}
