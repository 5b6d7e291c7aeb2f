//go:build windows

package launch

import (
	"os/exec"
	"syscall"
)

// createNoWindow suppresses the console window for the spawned client.
const createNoWindow = 0x08000000

// detachProcess spawns the child without a visible console window.
func detachProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: createNoWindow,
	}
}
