//go:build windows

package opener

import "os/exec"

func command(path string) (string, []string) {
	return "rundll32", []string{"url.dll,FileProtocolHandler", path}
}

func detach(*exec.Cmd) {}
