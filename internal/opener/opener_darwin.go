//go:build darwin

package opener

import (
	"os/exec"
	"syscall"
)

func command(path string) (string, []string) {
	return "open", []string{path}
}

func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
