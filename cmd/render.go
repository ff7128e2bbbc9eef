/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// render.go prints markdown, rendered with glamour when stdout is a terminal.

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Terminal reports whether output goes to an interactive terminal.
func Terminal() bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Render writes markdown to the output writer. On a terminal it is rendered
// with glamour; pipes and redirects get the raw text.
func Render(markdown string) {
	if Terminal() {
		if rendered, err := glamour.Render(markdown, "dark"); err == nil {
			fmt.Fprint(out, rendered)
			return
		}
	}
	fmt.Fprint(out, markdown)
}
