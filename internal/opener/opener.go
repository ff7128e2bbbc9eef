// Package opener hands a file to the operating system's default
// application. The viewer is started detached; odin does not wait for it.
package opener

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrNoOpener is returned when the platform's open command is unavailable.
var ErrNoOpener = errors.New("no default opener available")

// starter is swapped in tests.
var starter = func(cmd *exec.Cmd) error { return cmd.Start() }

// Open launches the default viewer for path.
func Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	name, args := command(path)
	bin, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoOpener, name)
	}

	cmd := exec.Command(bin, args...)
	detach(cmd)
	if err := starter(cmd); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	if cmd.Process != nil {
		return cmd.Process.Release()
	}
	return nil
}
