// tools_tags.go implements MCP tools for the tag catalog.
//
// Adding is idempotent. Rename and delete go through the catalog's
// synchroniser, so the affected documents are rewritten in the same call;
// the rewrites are returned so the LLM can see what changed.

package mcp

import (
	"context"

	"github.com/jpl-au/odin/internal/log"
	"github.com/jpl-au/odin/internal/store"
	"github.com/jpl-au/odin/internal/taglist"
	"github.com/mark3labs/mcp-go/mcp"
)

type addedTag struct {
	store.Tag
	Created bool `json:"created"`
}

// listTags handles odin_tags tool calls.
func (h *handlers) listTags(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireInit(); r != nil {
		return r, nil
	}

	tags, err := h.svc.ListTags(ctx)

	log.Event("mcp:tags", "list").Author("mcp").Detail("count", len(tags)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if tags == nil {
		tags = []store.Tag{}
	}
	return jsonResult(tags)
}

// tagAdd handles odin_tag_add tool calls.
func (h *handlers) tagAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireInit(); r != nil {
		return r, nil
	}

	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}
	values := taglist.Parse(value)
	if len(values) == 0 {
		return mcp.NewToolResultError("no tag values given"), nil
	}

	out := make([]addedTag, 0, len(values))
	for _, v := range values {
		tag, created, err := h.svc.InsertTag(ctx, v)

		log.Event("mcp:tag_add", "add").Author("mcp").Target(v).Detail("created", created).Write(err)

		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out = append(out, addedTag{Tag: *tag, Created: created})
	}
	return jsonResult(out)
}

// tagRename handles odin_tag_rename tool calls.
func (h *handlers) tagRename(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireInit(); r != nil {
		return r, nil
	}

	ref, err := tagRef(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := req.RequireString("new")
	if err != nil {
		return mcp.NewToolResultError("new is required"), nil //nolint:nilerr
	}
	dryRun := getBool(req, "dry_run", false)

	rename := h.svc.RenameTag
	if dryRun {
		rename = h.svc.PreviewRename
	}
	res, err := rename(ctx, ref, value)

	l := log.Event("mcp:tag_rename", "rename").Author("mcp").Target(ref.String()).Detail("new", value).Detail("dry_run", dryRun)
	if res != nil {
		l.ID(res.Tag.ID).Detail("rewrites", len(res.Rewrites))
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

// tagDelete handles odin_tag_delete tool calls.
func (h *handlers) tagDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireInit(); r != nil {
		return r, nil
	}

	ref, err := tagRef(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dryRun := getBool(req, "dry_run", false)

	del := h.svc.DeleteTag
	if dryRun {
		del = h.svc.PreviewDelete
	}
	res, err := del(ctx, ref)

	l := log.Event("mcp:tag_delete", "delete").Author("mcp").Target(ref.String()).Detail("dry_run", dryRun)
	if res != nil {
		l.Detail("deleted", res.Deleted).Detail("rewrites", len(res.Rewrites))
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}
