// Package mcp implements the Model Context Protocol server, exposing odin
// catalog operations to LLMs over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/odin/extension"
	"github.com/jpl-au/odin/internal/catalog"
	"github.com/jpl-au/odin/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when no catalog exists.
const ErrNotInitialised = "catalog not initialised - call odin_init first"

// Serve starts the MCP server over stdio for the catalog found from dir.
//
// The server starts even if no catalog exists, so a client can call
// odin_init. Tools that need the catalog return ErrNotInitialised until then.
func Serve(dir string) error {
	// stdout carries JSON-RPC
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	h := &handlers{dir: dir}
	if err := h.open(); err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		slog.Error("failed to open catalog", "error", err)
		return err
	}
	defer h.close()
	if h.svc == nil {
		slog.Info("odin not initialised, starting in uninitialised mode - call odin_init to create catalog")
	}

	s := server.NewMCPServer(
		"odin",
		Version,
		server.WithToolCapabilities(true),
	)
	registerTools(s, h)
	registerExtensionTools(s, h)

	slog.Info("odin MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the catalog.
// The svc field is nil until a catalog exists.
type handlers struct {
	dir    string
	svc    *catalog.Service
	extCtx extension.Context
}

// open connects to the catalog and wires the extension context.
func (h *handlers) open() error {
	svc, err := catalog.New(h.dir)
	if err != nil {
		return err
	}
	h.svc = svc
	h.extCtx = extension.NewContext(svc, svc.DB(), nil)
	svc.SetExtensionContext(h.extCtx)
	return nil
}

func (h *handlers) close() {
	if h.svc != nil {
		h.svc.Close()
		h.svc = nil
	}
}

// requireInit returns an error result if the catalog is not open.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// registerTools exposes odin operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("odin_init",
			mcp.WithDescription("Initialise a new odin catalog. Call this first if other tools return 'catalog not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, the database is gitignored")),
		),
		h.initCatalog,
	)

	s.AddTool(
		mcp.NewTool("odin_tags",
			mcp.WithDescription("List every tag in id order"),
		),
		h.listTags,
	)

	s.AddTool(
		mcp.NewTool("odin_tag_add",
			mcp.WithDescription("Add one or more tags. Values are lowercased; a comma separates several. Existing tags are returned unchanged."),
			mcp.WithString("value", mcp.Required(), mcp.Description("Tag value or comma-separated values")),
		),
		h.tagAdd,
	)

	s.AddTool(
		mcp.NewTool("odin_tag_rename",
			mcp.WithDescription("Rename a tag and rewrite it on every document that carries it"),
			mcp.WithNumber("id", mcp.Description("Tag id")),
			mcp.WithString("value", mcp.Description("Current tag value (if id not given)")),
			mcp.WithString("new", mcp.Required(), mcp.Description("New tag value")),
			mcp.WithBoolean("dry_run", mcp.Description("Report affected documents without changing anything")),
		),
		h.tagRename,
	)

	s.AddTool(
		mcp.NewTool("odin_tag_delete",
			mcp.WithDescription("Delete a tag and remove it from every document that carries it"),
			mcp.WithNumber("id", mcp.Description("Tag id")),
			mcp.WithString("value", mcp.Description("Tag value (if id not given)")),
			mcp.WithBoolean("dry_run", mcp.Description("Report affected documents without changing anything")),
		),
		h.tagDelete,
	)

	s.AddTool(
		mcp.NewTool("odin_docs",
			mcp.WithDescription("List documents, optionally filtered by tag"),
			mcp.WithString("tag", mcp.Description("Tag fragment; matches a substring of the document's tags")),
			mcp.WithBoolean("exact", mcp.Description("Match whole tags only")),
		),
		h.listDocuments,
	)

	s.AddTool(
		mcp.NewTool("odin_doc_get",
			mcp.WithDescription("Get one document with its stored file details"),
			mcp.WithNumber("id", mcp.Description("Document id")),
			mcp.WithString("title", mcp.Description("Document title (if id not given)")),
		),
		h.getDocument,
	)

	s.AddTool(
		mcp.NewTool("odin_doc_add",
			mcp.WithDescription("Catalogue a PDF. The file is copied into the content store."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Filesystem path of the PDF")),
			mcp.WithString("title", mcp.Required(), mcp.Description("Unique title")),
			mcp.WithString("author", mcp.Description("Author")),
			mcp.WithString("publication", mcp.Description("Publication")),
			mcp.WithNumber("volume", mcp.Description("Volume")),
			mcp.WithNumber("year", mcp.Description("Year")),
			mcp.WithString("tags", mcp.Description("Comma-separated tags")),
			mcp.WithString("doi", mcp.Description("DOI")),
		),
		h.addDocument,
	)

	s.AddTool(
		mcp.NewTool("odin_doc_import",
			mcp.WithDescription("Import every [[documents]] entry of a TOML manifest. Nothing is inserted if any entry is invalid."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Filesystem path of the .toml manifest")),
			mcp.WithBoolean("dry_run", mcp.Description("Validate only")),
		),
		h.importDocuments,
	)

	s.AddTool(
		mcp.NewTool("odin_doc_update",
			mcp.WithDescription("Change document metadata. Only given fields change."),
			mcp.WithNumber("id", mcp.Description("Document id")),
			mcp.WithString("title", mcp.Description("Document title (if id not given)")),
			mcp.WithString("new_title", mcp.Description("New title")),
			mcp.WithString("author", mcp.Description("Author")),
			mcp.WithString("publication", mcp.Description("Publication")),
			mcp.WithNumber("volume", mcp.Description("Volume")),
			mcp.WithNumber("year", mcp.Description("Year")),
			mcp.WithString("tags", mcp.Description("Replacement comma-separated tags")),
			mcp.WithString("doi", mcp.Description("DOI")),
		),
		h.updateDocument,
	)

	s.AddTool(
		mcp.NewTool("odin_doc_delete",
			mcp.WithDescription("Delete a document record and its stored file"),
			mcp.WithNumber("id", mcp.Description("Document id")),
			mcp.WithString("title", mcp.Description("Document title (if id not given)")),
		),
		h.deleteDocument,
	)

	s.AddTool(
		mcp.NewTool("odin_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (author.name, author.email, store.dir, store.verify_pdf, limits.max_source) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("odin_config_set",
			mcp.WithDescription("Set a configuration value"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
			mcp.WithBoolean("local", mcp.Description("Write to the catalog's config instead of the global one")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("odin_guide",
			mcp.WithDescription("Get help/guide content for odin"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'tag', 'doc', 'import') or empty for index")),
		),
		h.getGuide,
	)
}

// registerExtensionTools adds tools contributed by registered extensions.
func registerExtensionTools(s *server.MCPServer, h *handlers) {
	for _, ext := range extension.All() {
		for _, t := range ext.MCPTools() {
			handler := t.Handler
			s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				if r := h.requireInit(); r != nil {
					return r, nil
				}
				return handler(ctx, h.extCtx, req)
			})
		}
	}
}
