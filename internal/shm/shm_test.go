package shm

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func testName(t *testing.T) string {
	t.Helper()
	name := "autocleaner-test-" + uuid.NewString()
	t.Cleanup(func() { _ = Unlink(name) })
	return name
}

func TestOpenCreatesFalseFlag(t *testing.T) {
	f, err := Open(testName(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	if !f.Owner() {
		t.Error("first Open() should own the segment")
	}
	if f.Load() {
		t.Error("fresh flag should read false")
	}
}

func TestIndependentMappingsShareState(t *testing.T) {
	name := testName(t)

	a, err := Open(name)
	if err != nil {
		t.Fatalf("Open() a error = %v", err)
	}
	defer a.Close()

	a.Store(true)

	b, err := Open(name)
	if err != nil {
		t.Fatalf("Open() b error = %v", err)
	}
	defer b.Close()

	if b.Owner() {
		t.Error("second Open() should attach, not own")
	}
	if !b.Load() {
		t.Fatal("attached mapping lost the value set before attach")
	}

	b.Store(false)
	if a.Load() {
		t.Error("write through b not visible through a")
	}

	if prev := a.Swap(true); prev {
		t.Error("Swap() returned true, want false")
	}
	if !b.CompareAndSwap(true, false) {
		t.Error("CompareAndSwap(true, false) failed")
	}
	if b.CompareAndSwap(true, false) {
		t.Error("CompareAndSwap(true, false) succeeded on a false flag")
	}
	if a.Load() {
		t.Error("a should observe false after b's CompareAndSwap")
	}
}

func TestBrokerCachesPerName(t *testing.T) {
	opened := map[string]int{}
	b := &Broker{
		flags: make(map[string]*Flag),
		open: func(name string) (*Flag, error) {
			opened[name]++
			mem := make([]byte, segmentSize)
			return newFlag(name, mem, true, nil), nil
		},
	}

	x1, err := b.Get("x")
	if err != nil {
		t.Fatal(err)
	}
	x2, _ := b.Get("x")
	y, _ := b.Get("y")

	if x1 != x2 {
		t.Error("Get() returned different flags for the same name")
	}
	if x1 == y {
		t.Error("Get() returned the same flag for different names")
	}
	if opened["x"] != 1 || opened["y"] != 1 {
		t.Errorf("open calls = %v, want one per name", opened)
	}

	cell, err := b.Flag("x")
	if err != nil {
		t.Fatal(err)
	}
	cell.Store(true)
	if !x1.Load() {
		t.Error("Flag() cell is not the cached flag")
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if len(b.flags) != 0 {
		t.Error("Close() left cached flags behind")
	}
}

func TestBrokerOpenFailure(t *testing.T) {
	boom := errors.New("no shared memory")
	b := &Broker{
		flags: make(map[string]*Flag),
		open:  func(string) (*Flag, error) { return nil, boom },
	}

	if _, err := b.Flag("x"); !errors.Is(err, boom) {
		t.Fatalf("Flag() error = %v, want %v", err, boom)
	}
	if len(b.flags) != 0 {
		t.Error("failed open was cached")
	}
}

func TestDefaultIsProcessWide(t *testing.T) {
	if Default() != Default() {
		t.Fatal("Default() returned different brokers")
	}
}
