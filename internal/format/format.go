// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// catalog logic while this package handles framing, alignment and sizes.
package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
)

// Width is the column width of frames and separators.
const Width = 80

var (
	frame = strings.Repeat("-", Width)
	rule  = strings.Repeat("=", Width)
)

// humanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func humanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-12s %s\n", label+":", value)
}

// Document prints one document inside a dashed frame.
func Document(w io.Writer, d store.Document) {
	fmt.Fprintln(w, frame)
	field(w, "id", strconv.FormatInt(d.ID, 10))
	field(w, "title", d.Title)
	field(w, "author", d.Author)
	field(w, "publication", d.Publication)
	field(w, "volume", strconv.Itoa(d.Volume))
	field(w, "year", strconv.Itoa(d.Year))
	field(w, "doi", d.DOI)
	field(w, "tags", d.Tags)
	field(w, "uuid", d.ContentID)
	fmt.Fprintln(w, frame)
}

// Documents prints a framed listing under a "Documents:" header.
func Documents(w io.Writer, docs []store.Document) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Documents:")
	fmt.Fprintln(w, rule)
	for _, d := range docs {
		Document(w, d)
	}
	fmt.Fprintln(w, rule)
}

// Info prints a document followed by its stored file details.
func Info(w io.Writer, d store.Document, info *service.ContentInfo) {
	Document(w, d)
	if info == nil {
		return
	}
	field(w, "path", info.Path)
	field(w, "size", humanSize(info.Size))
	if info.Pages > 0 {
		field(w, "pages", strconv.Itoa(info.Pages))
	}
}

// Tags prints a tag listing, one "id  value" line per tag.
func Tags(w io.Writer, tags []store.Tag) {
	fmt.Fprintln(w, "Tags:")
	if len(tags) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	width := len(strconv.FormatInt(tags[len(tags)-1].ID, 10))
	for _, t := range tags {
		fmt.Fprintf(w, "  %*d  %s\n", width, t.ID, t.Value)
	}
}

// Stats prints row counts.
func Stats(w io.Writer, s *store.Stats) {
	fmt.Fprintf(w, "%d documents, %d tags\n", s.Documents, s.Tags)
}
