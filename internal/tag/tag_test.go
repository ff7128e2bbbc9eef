package tag_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/odin/internal/catalog"
	"github.com/jpl-au/odin/internal/config"
	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupService creates a catalog in a temp dir and opens it.
func setupService(t *testing.T) service.Service {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvStoreDir, "")
	dir := t.TempDir()

	_, err := catalog.Init(false, false, dir)
	require.NoError(t, err, "init catalog")

	svc, err := catalog.New(dir)
	require.NoError(t, err, "open catalog")
	t.Cleanup(func() {
		svc.Close()
		config.SetRoot("")
	})
	return svc
}

func addDocument(t *testing.T, svc service.Service, title, tags string) int64 {
	t.Helper()
	src := filepath.Join(t.TempDir(), "src.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.4 "+title), 0o644))
	res, err := svc.InsertDocument(context.Background(), service.NewDocument{
		Title:  title,
		Source: src,
		Tags:   tags,
	})
	require.NoError(t, err)
	return res.Document.ID
}

func TestAdd(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	var buf bytes.Buffer
	res, err := tag.Add(ctx, &buf, svc, "ML, nlp,,ml")
	require.NoError(t, err)

	require.Len(t, res.Added, 2, "duplicates and empties collapse")
	assert.Equal(t, "ml", res.Added[0].Tag.Value)
	assert.True(t, res.Added[0].Created)
	assert.Equal(t, "nlp", res.Added[1].Tag.Value)
	assert.Len(t, res.Tags, 2)
	assert.Contains(t, buf.String(), `Added tag #1 "ml"`)
	assert.Contains(t, buf.String(), "Tags:")

	buf.Reset()
	res, err = tag.Add(ctx, &buf, svc, "ml")
	require.NoError(t, err)
	assert.False(t, res.Added[0].Created)
	assert.Contains(t, buf.String(), "already exists")
}

func TestAdd_Empty(t *testing.T) {
	svc := setupService(t)

	_, err := tag.Add(context.Background(), &bytes.Buffer{}, svc, " , ")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	var buf bytes.Buffer
	tags, err := tag.List(ctx, &buf, svc)
	require.NoError(t, err)
	assert.Empty(t, tags)
	assert.Contains(t, buf.String(), "(none)")

	_, _, err = svc.InsertTag(ctx, "physics")
	require.NoError(t, err)

	buf.Reset()
	tags, err = tag.List(ctx, &buf, svc)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Contains(t, buf.String(), "physics")
}

func TestModify(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	id := addDocument(t, svc, "attention", "ml,nlp")

	var buf bytes.Buffer
	res, err := tag.Modify(ctx, &buf, svc, service.TagByValue("ml"), "machine-learning", tag.Options{DryRun: true})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	require.Len(t, res.Rewrites, 1)
	assert.Contains(t, buf.String(), "Would rename")

	d, err := svc.DocumentByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ml,nlp", d.Tags, "dry run writes nothing")

	buf.Reset()
	res, err = tag.Modify(ctx, &buf, svc, service.TagByValue("ml"), "machine-learning", tag.Options{})
	require.NoError(t, err)
	assert.Equal(t, "ml", res.Old)
	assert.Contains(t, buf.String(), "Renamed")
	assert.Contains(t, buf.String(), "+ machine-learning")

	d, err = svc.DocumentByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "machine-learning,nlp", d.Tags)
}

func TestModify_Unchanged(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, _, err := svc.InsertTag(ctx, "ml")
	require.NoError(t, err)

	var buf bytes.Buffer
	res, err := tag.Modify(ctx, &buf, svc, service.TagByValue("ml"), "ML", tag.Options{})
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Contains(t, buf.String(), "already")
}

func TestRemove(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	id := addDocument(t, svc, "attention", "ml,nlp")

	var buf bytes.Buffer
	res, err := tag.Remove(ctx, &buf, svc, service.TagByValue("nlp"), tag.Options{})
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.Contains(t, buf.String(), `Deleted tag "nlp"`)

	d, err := svc.DocumentByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ml", d.Tags)

	_, err = svc.TagByValue(ctx, "nlp")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRemove_Missing(t *testing.T) {
	svc := setupService(t)

	var buf bytes.Buffer
	res, err := tag.Remove(context.Background(), &buf, svc, service.TagByID(42), tag.Options{})
	require.NoError(t, err)
	assert.False(t, res.Deleted)
	assert.Contains(t, buf.String(), "No tag #42")
}
