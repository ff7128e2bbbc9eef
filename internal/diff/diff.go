// Package diff renders before/after views of tag strings, used by
// `odin tag modify --dry-run` and `odin tag rm --dry-run` to show what the
// synchroniser would rewrite.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/taglist"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Result holds diff output.
type Result struct {
	Old  string // old label
	New  string // new label
	Diff string // plain diff text
}

// Compute returns a line diff between old and new content.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	d := dmp.DiffMain(a, b, false)
	d = dmp.DiffCharsToLines(d, lines)
	d = dmp.DiffCleanupSemantic(d)

	return Result{
		Old:  oldLabel,
		New:  newLabel,
		Diff: format(d),
	}
}

// Tags diffs two tag strings one token per line, so a rename shows as one
// removed and one added tag.
func Tags(before, after, label string) Result {
	return Compute(perLine(before), perLine(after), label+" (before)", label+" (after)")
}

func perLine(tags string) string {
	toks := taglist.Parse(tags)
	if len(toks) == 0 {
		return ""
	}
	return strings.Join(toks, "\n") + "\n"
}

// format converts diffs to unified-style text.
func format(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		default:
			prefix = "  "
		}
		for _, l := range strings.Split(text, "\n") {
			b.WriteString(prefix + l + "\n")
		}
	}
	return b.String()
}

// Colourise adds ANSI colours to diff output.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}

// Rewrites writes one diff per rewritten document, or a note when there
// are none.
func Rewrites(w io.Writer, rewrites []service.Rewrite, colour bool) {
	if len(rewrites) == 0 {
		fmt.Fprintln(w, "no documents affected")
		return
	}
	for _, rw := range rewrites {
		label := fmt.Sprintf("#%d %s", rw.DocumentID, rw.Title)
		fmt.Fprint(w, Tags(rw.Before, rw.After, label).Format(colour))
	}
}
