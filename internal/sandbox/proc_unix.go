//go:build unix

package sandbox

import (
	"os/exec"
	"syscall"
)

// configureProcGroup puts the subprocess in its own process group and makes
// cancellation kill the whole group, so grandchildren spawned by the script
// cannot outlive the run.
func configureProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
