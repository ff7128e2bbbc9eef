// tools_documents.go implements MCP tools for the document catalog.
//
// These mirror the `odin doc` commands but return structured JSON. Document
// references accept an id or a title; an id wins when both are given.

package mcp

import (
	"context"
	"errors"
	"io"

	"github.com/jpl-au/odin/internal/bulk"
	"github.com/jpl-au/odin/internal/content"
	"github.com/jpl-au/odin/internal/log"
	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

type documentView struct {
	store.Document
	File *service.ContentInfo `json:"file,omitempty"`
}

type deleteView struct {
	*service.DeleteResult
	Warning string `json:"warning,omitempty"`
}

// listDocuments handles odin_docs tool calls.
func (h *handlers) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireInit(); r != nil {
		return r, nil
	}

	tag := getString(req, "tag", "")
	exact := getBool(req, "exact", false)

	var docs []store.Document
	var err error
	if tag == "" {
		docs, err = h.svc.ListDocuments(ctx)
	} else {
		docs, err = h.svc.FindByTag(ctx, tag, exact)
	}

	log.Event("mcp:docs", "list").Author("mcp").Detail("tag", tag).Detail("exact", exact).Detail("count", len(docs)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if docs == nil {
		docs = []store.Document{}
	}
	return jsonResult(docs)
}

// getDocument handles odin_doc_get tool calls.
func (h *handlers) getDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireInit(); r != nil {
		return r, nil
	}

	ref, err := docRef(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := h.svc.Document(ctx, ref)

	log.Event("mcp:doc_get", "get").Author("mcp").Target(ref.String()).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	view := documentView{Document: *doc}
	if info, err := h.svc.Info(*doc); err == nil {
		view.File = info
	}
	return jsonResult(view)
}

// addDocument handles odin_doc_add tool calls.
func (h *handlers) addDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireInit(); r != nil {
		return r, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required"), nil //nolint:nilerr
	}

	nd := service.NewDocument{
		Title:       title,
		Source:      path,
		Author:      getString(req, "author", ""),
		Publication: getString(req, "publication", ""),
		Volume:      int(getInt(req, "volume", 0)),
		Year:        int(getInt(req, "year", 0)),
		Tags:        getString(req, "tags", ""),
		DOI:         getString(req, "doi", ""),
	}
	res, err := h.svc.InsertDocument(ctx, nd)

	l := log.Event("mcp:doc_add", "add").Author("mcp").Target(title).Detail("source", path)
	if res != nil {
		l.ResultID(res.Document.ID).Detail("existing", res.Existing)
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

// importDocuments handles odin_doc_import tool calls.
func (h *handlers) importDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireInit(); r != nil {
		return r, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	dryRun := getBool(req, "dry_run", false)

	var res bulk.Result
	m, err := bulk.Load(path)
	if err == nil {
		res, err = bulk.Run(ctx, h.svc, m, bulk.Options{DryRun: dryRun, Progress: io.Discard})
	}

	log.Event("mcp:doc_import", "import").Author("mcp").Target(path).
		Detail("dry_run", dryRun).Detail("inserted", len(res.Inserted)).Detail("existing", res.Existing).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

// updateDocument handles odin_doc_update tool calls.
func (h *handlers) updateDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireInit(); r != nil {
		return r, nil
	}

	ref, err := docRef(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	u := service.DocumentUpdate{
		Title:       optString(req, "new_title"),
		Author:      optString(req, "author"),
		Publication: optString(req, "publication"),
		Volume:      optInt(req, "volume"),
		Year:        optInt(req, "year"),
		Tags:        optString(req, "tags"),
		DOI:         optString(req, "doi"),
	}
	if u.IsEmpty() {
		return mcp.NewToolResultError("no fields to update"), nil
	}

	doc, err := h.svc.UpdateDocument(ctx, ref, u)

	l := log.Event("mcp:doc_update", "update").Author("mcp").Target(ref.String())
	if doc != nil {
		l.ID(doc.ID)
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(doc)
}

// deleteDocument handles odin_doc_delete tool calls.
func (h *handlers) deleteDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if r := h.requireInit(); r != nil {
		return r, nil
	}

	ref, err := docRef(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := h.svc.DeleteDocument(ctx, ref)

	l := log.Event("mcp:doc_delete", "delete").Author("mcp").Target(ref.String())
	if res != nil {
		l.Detail("deleted", res.Deleted)
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	view := deleteView{DeleteResult: res}
	if res.Cleanup != nil {
		view.Warning = res.Cleanup.Error()
		if errors.Is(res.Cleanup, content.ErrMissing) {
			view.Warning = "stored file was already missing"
		}
	}
	return jsonResult(view)
}
