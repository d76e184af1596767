// Package shm exposes named boolean flags living in OS-level shared memory,
// so independent processes can observe or set one bit of state without a
// lock file.
//
// A segment is created by whichever process opens a name first; later
// openers attach to it. Segments are best-effort: they may vanish when the
// last attached process exits or when the OS reclaims them.
package shm

import (
	"sync/atomic"
	"unsafe"
)

// segmentSize is the size of the mapped region backing one flag.
const segmentSize = 4

// Flag is a boolean cell in a shared memory segment. All access is atomic;
// the underlying address is never exposed.
type Flag struct {
	name  string
	cell  *atomic.Uint32
	owner bool
	unmap func() error
}

// newFlag wraps a mapped region. Fresh segments are zero-filled by the OS,
// so a newly created flag reads false without an initializing write that
// could race with an early attacher.
func newFlag(name string, mem []byte, owner bool, unmap func() error) *Flag {
	return &Flag{
		name:  name,
		cell:  (*atomic.Uint32)(unsafe.Pointer(&mem[0])),
		owner: owner,
		unmap: unmap,
	}
}

// Name returns the flag's OS identifier.
func (f *Flag) Name() string { return f.name }

// Owner reports whether this process created the segment.
func (f *Flag) Owner() bool { return f.owner }

// Load reads the flag.
func (f *Flag) Load() bool { return f.cell.Load() != 0 }

// Store sets the flag.
func (f *Flag) Store(v bool) { f.cell.Store(b2u(v)) }

// Swap sets the flag and returns the previous value.
func (f *Flag) Swap(v bool) bool { return f.cell.Swap(b2u(v)) != 0 }

// CompareAndSwap sets the flag to new if it currently equals old.
func (f *Flag) CompareAndSwap(old, new bool) bool {
	return f.cell.CompareAndSwap(b2u(old), b2u(new))
}

// Close detaches the segment from this process. The Flag must not be used
// afterwards.
func (f *Flag) Close() error {
	if f.unmap == nil {
		return nil
	}
	err := f.unmap()
	f.unmap = nil
	return err
}

func b2u(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}
