//go:build unix

package launcher

import (
	"os/exec"
	"syscall"
)

// detach puts the child in its own session so it outlives the launcher and
// has no controlling terminal.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
