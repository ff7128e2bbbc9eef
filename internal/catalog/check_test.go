package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/odin/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Clean(t *testing.T) {
	svc, _ := setupService(t)
	insert(t, svc, "p1", "ml")

	res, err := svc.Check(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Orphans)
	assert.Empty(t, res.Missing)
}

func TestCheck_FindsDrift(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	d := insert(t, svc, "p1", "")

	cs, err := content.New(svc.ContentDir())
	require.NoError(t, err)
	stray := content.NewID()
	require.NoError(t, cs.Put(stray, writeSource(t, "stray.pdf")))
	require.NoError(t, os.Remove(cs.Resolve(d.ContentID)))

	res, err := svc.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{stray}, res.Orphans)
	require.Len(t, res.Missing, 1)
	assert.Equal(t, d.ID, res.Missing[0].ID)
}

func TestPruneOrphans(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	d := insert(t, svc, "p1", "")

	cs, err := content.New(svc.ContentDir())
	require.NoError(t, err)
	stray := content.NewID()
	require.NoError(t, cs.Put(stray, writeSource(t, "stray.pdf")))

	// A referenced id and an unknown id are never removed.
	removed, err := svc.PruneOrphans(ctx, []string{stray, d.ContentID, content.NewID()})
	require.NoError(t, err)
	assert.Equal(t, []string{stray}, removed)
	assert.False(t, cs.Exists(stray))
	assert.True(t, cs.Exists(d.ContentID))
}

func TestPruneOrphans_KeepsForeignFiles(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	thesis := filepath.Join(svc.ContentDir(), "my-thesis.pdf")
	require.NoError(t, os.WriteFile(thesis, []byte("%PDF-1.4"), 0o644))

	res, err := svc.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Orphans)

	removed, err := svc.PruneOrphans(ctx, []string{"my-thesis"})
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.FileExists(t, thesis)
}
