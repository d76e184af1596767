// Package lock guarantees at most one live process per role using an
// exclusive, non-blocking advisory lock on a named file.
//
// Locks are released by the operating system when the owning process exits,
// including on a crash, so a stale lock file never blocks a later start.
package lock

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gofrs/flock"
)

// ErrHeld is returned by Acquire when another live handle owns the lock.
var ErrHeld = errors.New("lock held by another instance")

// Handle is an acquired singleton lock.
type Handle struct {
	fl   *flock.Flock
	once sync.Once
	err  error
}

// Acquire opens (creating if absent) the file at path and takes an exclusive
// lock on it without waiting.
//
// It returns ErrHeld when the lock is owned elsewhere. Any other error means
// the lock file itself could not be opened or locked (permissions, missing
// parent directory); callers treat both outcomes as "do not run".
func Acquire(path string) (*Handle, error) {
	fl := flock.New(path)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !ok {
		return nil, ErrHeld
	}
	return &Handle{fl: fl}, nil
}

// Path returns the lock file path.
func (h *Handle) Path() string {
	return h.fl.Path()
}

// Release unlocks and closes the lock file. Calling it more than once is safe.
func (h *Handle) Release() error {
	h.once.Do(func() {
		h.err = h.fl.Unlock()
	})
	return h.err
}
