//go:build linux || freebsd || openbsd || netbsd || dragonfly

package opener

import (
	"os/exec"
	"syscall"
)

func command(path string) (string, []string) {
	return "xdg-open", []string{path}
}

func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
