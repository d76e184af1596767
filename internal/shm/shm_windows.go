//go:build windows

package shm

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Open creates the named pagefile-backed mapping for name, or attaches to it
// when another process already created it.
func Open(name string) (*Flag, error) {
	objName, err := windows.UTF16PtrFromString(`Local\` + strings.ReplaceAll(name, `\`, "_"))
	if err != nil {
		return nil, err
	}

	owner := true
	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, 0, segmentSize, objName)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) && h != 0 {
		owner = false
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("create file mapping %s: %w", name, err)
	}
	// The view keeps the section alive once mapped.
	defer windows.CloseHandle(h)

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_WRITE, 0, 0, segmentSize)
	if err != nil {
		return nil, fmt.Errorf("map view %s: %w", name, err)
	}
	mem := unsafe.Slice((*byte)(unsafe.Pointer(addr)), segmentSize)
	return newFlag(name, mem, owner, func() error { return windows.UnmapViewOfFile(addr) }), nil
}

// Unlink is a no-op on Windows: a mapping disappears with its last handle.
func Unlink(string) error { return nil }
