// Package document provides the document extension.
// Registers the doc command with subcommands add, modify, rm, ls, show,
// open, path and export.
//
// Each subcommand file is separated to isolate its specific flag handling
// and output formatting logic.

package document

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/odin/cmd"
	"github.com/jpl-au/odin/extension"
	"github.com/jpl-au/odin/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the document extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "doc" - this extension manages the document catalog.
func (e *Extension) Name() string { return "doc" }

// Init connects to the shared service for document operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the doc command.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "doc",
		Short: "Manage catalogued documents",
		Long: `Add, modify, remove, list, view and export documents.

Documents are referenced by --id or --title. Titles are matched
case-insensitively.`,
	}
	c.AddCommand(
		e.newAddCmd(),
		e.newModifyCmd(),
		e.newRmCmd(),
		e.newLsCmd(),
		e.newShowCmd(),
		e.newOpenCmd(),
		e.newPathCmd(),
		e.newExportCmd(),
	)
	return []*cobra.Command{c}
}

// MCPTools exposes the stored file lookup, which only makes sense to an
// agent running on the same machine as the catalog.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("odin_doc_path",
				mcp.WithDescription("Absolute path of a document's stored PDF"),
				mcp.WithNumber("id", mcp.Description("Document id")),
				mcp.WithString("title", mcp.Description("Document title")),
			),
			Handler: e.mcpPath,
		},
	}
}

func (e *Extension) mcpPath(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref := service.Ref{
		ID:    int64(req.GetFloat("id", 0)),
		Title: req.GetString("title", ""),
	}
	if ref.IsZero() {
		return mcp.NewToolResultError("id or title is required"), nil
	}
	svc := extCtx.Service()
	d, err := svc.Document(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := svc.StoredPath(*d)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(p), nil
}

// addRefFlags registers the --id/--title pair used to pick one document.
func addRefFlags(c *cobra.Command) {
	c.Flags().Int64(extension.FlagID, 0, "Document id")
	c.Flags().String(extension.FlagTitle, "", "Document title")
	c.MarkFlagsOneRequired(extension.FlagID, extension.FlagTitle)
	c.MarkFlagsMutuallyExclusive(extension.FlagID, extension.FlagTitle)
}

func docRef(c *cobra.Command) service.Ref {
	id, _ := c.Flags().GetInt64(extension.FlagID)
	title, _ := c.Flags().GetString(extension.FlagTitle)
	return service.Ref{ID: id, Title: title}
}

// writer returns the human output stream, or a sink when JSON is printed.
func writer() io.Writer {
	if cmd.JSON() {
		return io.Discard
	}
	return cmd.Out()
}

func refError(verb string, ref service.Ref, err error) error {
	return cmd.PrintJSONError(fmt.Errorf("doc %s %s: %w", verb, ref, err))
}
