// open.go implements "odin doc open" and "odin doc path".

package document

import (
	"fmt"

	"github.com/jpl-au/odin/cmd"
	"github.com/jpl-au/odin/internal/log"
	"github.com/jpl-au/odin/internal/opener"
	"github.com/spf13/cobra"
)

func (e *Extension) newOpenCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "open (--id N | --title T)",
		Short: "Open a document's PDF with the system viewer",
		Args:  cobra.NoArgs,
		RunE:  e.runOpen,
	}
	addRefFlags(c)
	return c
}

func (e *Extension) newPathCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "path (--id N | --title T)",
		Short: "Print the path of a document's stored PDF",
		Args:  cobra.NoArgs,
		RunE:  e.runPath,
	}
	addRefFlags(c)
	return c
}

// storedPath resolves the command's reference to a stored file.
func (e *Extension) storedPath(c *cobra.Command) (string, error) {
	d, err := e.svc.Document(c.Context(), docRef(c))
	if err != nil {
		return "", err
	}
	return e.svc.StoredPath(*d)
}

func (e *Extension) runOpen(c *cobra.Command, _ []string) error {
	ref := docRef(c)
	l := log.Event("doc:open", "open").
		Author(cmd.Author()).
		Target(ref.Title).
		ID(ref.ID)

	p, err := e.storedPath(c)
	if err == nil {
		err = opener.Open(p)
	}
	l.Write(err)
	if err != nil {
		return refError("open", ref, err)
	}

	fmt.Fprintf(writer(), "Opened %s\n", p)
	return cmd.PrintJSON(map[string]string{"path": p})
}

func (e *Extension) runPath(c *cobra.Command, _ []string) error {
	ref := docRef(c)

	p, err := e.storedPath(c)
	log.Event("doc:path", "read").
		Author(cmd.Author()).
		Target(ref.Title).
		ID(ref.ID).
		Write(err)
	if err != nil {
		return refError("path", ref, err)
	}

	fmt.Fprintln(writer(), p)
	return cmd.PrintJSON(map[string]string{"path": p})
}
