//go:build !unix

package sandbox

import "os/exec"

// configureProcGroup falls back to killing the direct child only.
func configureProcGroup(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return cmd.Process.Kill()
	}
}
