// Package rm provides document deletion.
//
// Deletion removes the row first and the stored file second. A file that
// cannot be removed leaves the catalog consistent and is reported through
// Result.Warning; the caller decides how loudly to surface it.
package rm

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
)

// Result contains the outcome of a delete operation.
type Result struct {
	Document *store.Document `json:"document,omitempty"`
	Deleted  bool            `json:"deleted"`
	Warning  string          `json:"warning,omitempty"`
}

// Run deletes the document identified by ref.
func Run(ctx context.Context, w io.Writer, svc service.Service, ref service.Ref) (Result, error) {
	var result Result

	res, err := svc.DeleteDocument(ctx, ref)
	if err != nil {
		return result, err
	}
	result.Document = res.Document
	result.Deleted = res.Deleted
	if res.Cleanup != nil {
		result.Warning = res.Cleanup.Error()
	}

	if res.Document == nil {
		fmt.Fprintf(w, "No document %s\n", ref)
		return result, nil
	}
	fmt.Fprintf(w, "Deleted #%d %q\n", res.Document.ID, res.Document.Title)
	return result, nil
}
