// tools_util.go provides helper functions for MCP tool parameter extraction.
//
// Extraction is permissive: a missing or mistyped optional parameter yields
// the default rather than an error, because LLMs frequently omit optional
// parameters or send them in unexpected formats.

package mcp

import (
	"errors"

	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

var errNoRef = errors.New("id or title is required")

func args(req mcp.CallToolRequest) map[string]any {
	m, _ := req.Params.Arguments.(map[string]any)
	return m
}

// getString extracts a string parameter, returning def if it is missing or
// not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter. A string "true" is not accepted.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	if v, ok := args(req)[name].(bool); ok {
		return v
	}
	return def
}

// getInt extracts an integer parameter. JSON numbers arrive as float64.
func getInt(req mcp.CallToolRequest, name string, def int64) int64 {
	if v, ok := args(req)[name].(float64); ok {
		return int64(v)
	}
	return def
}

// optString returns a pointer to the parameter's value, or nil if absent.
func optString(req mcp.CallToolRequest, name string) *string {
	if v, ok := args(req)[name].(string); ok {
		return &v
	}
	return nil
}

// optInt returns a pointer to the parameter's value, or nil if absent.
func optInt(req mcp.CallToolRequest, name string) *int {
	if v, ok := args(req)[name].(float64); ok {
		n := int(v)
		return &n
	}
	return nil
}

// docRef reads a document reference from id or title.
func docRef(req mcp.CallToolRequest) (service.Ref, error) {
	ref := service.Ref{ID: getInt(req, "id", 0), Title: getString(req, "title", "")}
	if ref.IsZero() {
		return ref, errNoRef
	}
	return ref, nil
}

// tagRef reads a tag reference from id or value.
func tagRef(req mcp.CallToolRequest) (service.TagRef, error) {
	ref := service.TagRef{ID: getInt(req, "id", 0), Value: getString(req, "value", "")}
	if ref.IsZero() {
		return ref, errors.New("id or value is required")
	}
	return ref, nil
}

// jsonResult serialises v as indented JSON in a text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
