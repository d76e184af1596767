//go:build unix

package shm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// segmentDir is where segment files live: the per-user runtime directory
// when the session has one, tmpfs-backed /dev/shm when the host has it, the
// temp directory otherwise.
func segmentDir() string {
	for _, dir := range []string{os.Getenv("XDG_RUNTIME_DIR"), "/dev/shm"} {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return os.TempDir()
}

// segmentName scopes name to uid. /dev/shm and the temp directory are shared
// by every user on the host, and a segment created by one user is not
// writable by another.
func segmentName(name string, uid int) string {
	return strings.ReplaceAll(name, "/", "_") + "." + strconv.Itoa(uid)
}

func segmentPath(name string) string {
	return filepath.Join(segmentDir(), segmentName(name, os.Getuid()))
}

// Open creates the segment for name, or attaches to it when another process
// already created it, and maps it shared into this process.
func Open(name string) (*Flag, error) {
	path := segmentPath(name)

	owner := true
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL|unix.O_CLOEXEC, 0o600)
	if errors.Is(err, unix.EEXIST) {
		owner = false
		fd, err = unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// The mapping outlives the descriptor.
	defer unix.Close(fd)

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.Size < segmentSize {
		if err := unix.Ftruncate(fd, segmentSize); err != nil {
			return nil, fmt.Errorf("truncate %s: %w", path, err)
		}
	}

	mem, err := unix.Mmap(fd, 0, segmentSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return newFlag(name, mem, owner, func() error { return unix.Munmap(mem) }), nil
}

// Unlink removes the backing segment for name. Attached processes keep
// their mappings; later openers create a fresh segment.
func Unlink(name string) error {
	err := os.Remove(segmentPath(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
