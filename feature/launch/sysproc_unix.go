//go:build !windows

package launch

import (
	"os/exec"
	"syscall"
)

// detachProcess places the child in its own process group so it is not tied
// to the agent's controlling terminal.
func detachProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}
