// Package tag provides the tag extension for odin.
// It registers commands: tag (with subcommands add, ls, modify, rm).
package tag

import (
	"fmt"
	"io"

	"github.com/jpl-au/odin/cmd"
	"github.com/jpl-au/odin/extension"
	"github.com/jpl-au/odin/internal/log"
	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/tag"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the tag extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.EventHandler  = (*Extension)(nil)
)

// Name returns "tag" - this extension manages the tag catalog.
func (e *Extension) Name() string { return "tag" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the tag command with its subcommands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newTagCmd(),
	}
}

// MCPTools returns nil - MCP tag tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// HandleEvent records every document the synchroniser rewrote. The catalog
// logs the rename or delete itself; this adds one entry per document so the
// audit log shows each tag string before and after.
func (e *Extension) HandleEvent(_ extension.Context, evt extension.Event) error {
	ev, ok := evt.(extension.TagSyncEvent)
	if !ok {
		return nil
	}
	log.Event("tag:sync", "rewrite").
		Target(ev.Title).
		ID(ev.DocumentID).
		Detail("tag", ev.Tag).
		Detail("before", ev.Before).
		Detail("after", ev.After).
		Write(nil)
	return nil
}

// --- tag command with subcommands ---

func (e *Extension) newTagCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tag",
		Short: "Manage the tag catalog",
		Long: `Add, list, rename and delete tags.

Renaming or deleting a tag rewrites the tag string of every document that
carries it, in the same transaction.`,
	}
	c.AddCommand(e.newTagAddCmd())
	c.AddCommand(e.newTagLsCmd())
	c.AddCommand(e.newTagModifyCmd())
	c.AddCommand(e.newTagRmCmd())
	return c
}

func (e *Extension) newTagAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <value>[,<value>...]",
		Short: "Add one or more tags",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runTagAdd,
	}
}

func (e *Extension) newTagLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List all tags",
		Args:  cobra.NoArgs,
		RunE:  e.runTagLs,
	}
}

func (e *Extension) newTagModifyCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "modify (--id N | --value V) <new-value>",
		Short: "Rename a tag and update every document carrying it",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runTagModify,
	}
	addRefFlags(c)
	c.Flags().Bool(extension.FlagDryRun, false, "Show the documents that would change")
	return c
}

func (e *Extension) newTagRmCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "rm (--id N | --value V)",
		Short: "Delete a tag and remove it from every document",
		Args:  cobra.NoArgs,
		RunE:  e.runTagRm,
	}
	addRefFlags(c)
	c.Flags().Bool(extension.FlagDryRun, false, "Show the documents that would change")
	return c
}

func addRefFlags(c *cobra.Command) {
	c.Flags().Int64(extension.FlagID, 0, "Tag id")
	c.Flags().String(extension.FlagValue, "", "Tag value")
	c.MarkFlagsOneRequired(extension.FlagID, extension.FlagValue)
	c.MarkFlagsMutuallyExclusive(extension.FlagID, extension.FlagValue)
}

func tagRef(c *cobra.Command) service.TagRef {
	id, _ := c.Flags().GetInt64(extension.FlagID)
	value, _ := c.Flags().GetString(extension.FlagValue)
	return service.TagRef{ID: id, Value: value}
}

// writer returns the human output stream, or a sink when JSON is printed.
func writer() io.Writer {
	if cmd.JSON() {
		return io.Discard
	}
	return cmd.Out()
}

func (e *Extension) runTagAdd(c *cobra.Command, args []string) error {
	ctx := c.Context()
	values := args[0]

	l := log.Event("tag:add", "add").
		Author(cmd.Author()).
		Target(values)

	result, err := tag.Add(ctx, writer(), e.svc, values)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("tag add %q: %w", values, err))
	}

	l.Detail("count", len(result.Added)).Write(nil)
	return cmd.PrintJSON(result)
}

func (e *Extension) runTagLs(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	l := log.Event("tag:ls", "list").Author(cmd.Author())

	tags, err := tag.List(ctx, writer(), e.svc)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("tag ls: %w", err))
	}

	l.Detail("count", len(tags)).Write(nil)
	return cmd.PrintJSON(tags)
}

func (e *Extension) runTagModify(c *cobra.Command, args []string) error {
	ctx := c.Context()
	ref := tagRef(c)
	value := args[0]
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	l := log.Event("tag:modify", "rename").
		Author(cmd.Author()).
		Target(ref.Value).
		ID(ref.ID).
		Detail("value", value).
		Detail("dry_run", dryRun)

	res, err := tag.Modify(ctx, writer(), e.svc, ref, value, tag.Options{DryRun: dryRun, Colour: cmd.Colour()})
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("tag modify %s: %w", ref, err))
	}

	l.ResultID(res.Tag.ID).Detail("documents", len(res.Rewrites)).Write(nil)
	return cmd.PrintJSON(res)
}

func (e *Extension) runTagRm(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	ref := tagRef(c)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	l := log.Event("tag:rm", "delete").
		Author(cmd.Author()).
		Target(ref.Value).
		ID(ref.ID).
		Detail("dry_run", dryRun)

	res, err := tag.Remove(ctx, writer(), e.svc, ref, tag.Options{DryRun: dryRun, Colour: cmd.Colour()})
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("tag rm %s: %w", ref, err))
	}

	l.Detail("deleted", res.Deleted).Detail("documents", len(res.Rewrites)).Write(nil)
	return cmd.PrintJSON(res)
}
