// tools_init.go implements the MCP tool for initialising a new catalog.
//
// This tool works without an existing catalog. Other tools require
// initialisation first.

package mcp

import (
	"context"
	"log/slog"

	"github.com/jpl-au/odin/internal/catalog"
	"github.com/jpl-au/odin/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// initCatalog handles odin_init tool calls.
func (h *handlers) initCatalog(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.svc != nil {
		return mcp.NewToolResultError("catalog already initialised"), nil
	}

	local := getBool(req, "local", false)

	paths, err := catalog.Init(false, local, h.dir)

	log.Event("mcp:init", "init").Author("mcp").Detail("local", local).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.open(); err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open catalog: " + err.Error()), nil
	}

	slog.Info("catalog initialised", "dir", paths.Dir, "local", local)

	if local {
		return mcp.NewToolResultText("catalog initialised at " + paths.Dir + " (local - gitignored)"), nil
	}
	return mcp.NewToolResultText("catalog initialised at " + paths.Dir), nil
}
