package shm

import (
	"fmt"
	"sync"
)

// TrayActiveFlag is set by the tray agent while its event loop runs.
const TrayActiveFlag = "autocleaner.tray-active"

// EditorActiveFlag is set by the folder editor while it runs.
const EditorActiveFlag = "autocleaner.editor-active"

// Cell is the view of a shared flag that components depend on.
type Cell interface {
	Load() bool
	Store(v bool)
}

// FlagSource resolves named flags. *Broker implements it; tests substitute
// an in-memory fake.
type FlagSource interface {
	Flag(name string) (Cell, error)
}

// Broker resolves named flags once and caches them for its lifetime.
type Broker struct {
	open func(name string) (*Flag, error)

	mu    sync.Mutex
	flags map[string]*Flag
}

// NewBroker creates a broker backed by OS shared memory.
func NewBroker() *Broker {
	return &Broker{
		open:  Open,
		flags: make(map[string]*Flag),
	}
}

var defaultBroker = sync.OnceValue(NewBroker)

// Default returns the process-wide broker.
func Default() *Broker {
	return defaultBroker()
}

// Get returns the flag for name, creating or attaching to its segment on
// first use. Failure to obtain the segment is not recoverable for callers
// that need the flag.
func (b *Broker) Get(name string) (*Flag, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if f, ok := b.flags[name]; ok {
		return f, nil
	}
	f, err := b.open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open shared flag %s: %w", name, err)
	}
	b.flags[name] = f
	return f, nil
}

// Flag implements FlagSource.
func (b *Broker) Flag(name string) (Cell, error) {
	f, err := b.Get(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Close detaches every cached flag.
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var firstErr error
	for name, f := range b.flags {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(b.flags, name)
	}
	return firstErr
}
