//go:build unix

package recipe

import (
	"os/exec"
	"syscall"
)

// setProcessGroup starts the line in its own process group so cancellation
// reaches every process the shell spawned
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
