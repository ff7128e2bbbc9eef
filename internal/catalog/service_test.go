package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jpl-au/odin/internal/catalog"
	"github.com/jpl-au/odin/internal/config"
	"github.com/jpl-au/odin/internal/content"
	"github.com/jpl-au/odin/internal/repo"
	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
	"github.com/jpl-au/odin/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupService initialises a catalog in a temp dir and opens it. HOME is
// redirected so a developer's global config cannot leak in.
func setupService(t *testing.T) (*catalog.Service, string) {
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
	return svc, dir
}

// writeSource creates a file that passes source validation. Content is not
// parsed unless store.verify_pdf is on.
func writeSource(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("%PDF-1.4 "+name), 0o644))
	return p
}

func insert(t *testing.T, svc *catalog.Service, title, tags string) store.Document {
	t.Helper()
	res, err := svc.InsertDocument(context.Background(), service.NewDocument{
		Title:  title,
		Source: writeSource(t, "src.pdf"),
		Tags:   tags,
	})
	require.NoError(t, err)
	require.False(t, res.Existing)
	return res.Document
}

func titles(docs []store.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Title
	}
	sort.Strings(out)
	return out
}

// --- Tags ---

func TestService_InsertTagIdempotent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first, created, err := svc.InsertTag(ctx, "ml")
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.InsertTag(ctx, "  ML ")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestService_InsertTagInvalid(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for _, v := range []string{"", "  ", "a,b", "x\x00"} {
		_, _, err := svc.InsertTag(ctx, v)
		assert.ErrorIs(t, err, validate.ErrInvalidTag, "value %q", v)
	}
}

func TestService_TagLookups(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	tag, _, err := svc.InsertTag(ctx, "nlp")
	require.NoError(t, err)

	got, err := svc.TagByValue(ctx, " NLP")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, got.ID)

	got, err = svc.Tag(ctx, service.TagByID(tag.ID))
	require.NoError(t, err)
	assert.Equal(t, "nlp", got.Value)

	_, err = svc.TagByID(ctx, 404)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = svc.Tag(ctx, service.TagRef{})
	assert.ErrorIs(t, err, catalog.ErrEmptyRef)
}

// --- Documents ---

func TestService_InsertCreatesMissingTags(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	a, _, err := svc.InsertTag(ctx, "a")
	require.NoError(t, err)

	res, err := svc.InsertDocument(ctx, service.NewDocument{
		Title:  "paper",
		Source: writeSource(t, "paper.pdf"),
		Tags:   "a,b",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, res.CreatedTags)

	gotA, err := svc.TagByValue(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, a.ID, gotA.ID)

	gotB, err := svc.TagByValue(ctx, "b")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, gotB.ID)
}

func TestService_RoundTrip(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	res, err := svc.InsertDocument(ctx, service.NewDocument{
		Title:       "Paper A",
		Source:      writeSource(t, "a.pdf"),
		Author:      "Ada Lovelace",
		Publication: "Notes",
		Volume:      3,
		Year:        1843,
		Tags:        "ml,systems",
		DOI:         "10.1000/xyz",
	})
	require.NoError(t, err)

	got, err := svc.DocumentByID(ctx, res.Document.ID)
	require.NoError(t, err)

	want := store.Document{
		ID:          res.Document.ID,
		Title:       "paper a",
		Author:      "Ada Lovelace",
		Publication: "Notes",
		Volume:      3,
		Year:        1843,
		ContentID:   res.Document.ContentID,
		Tags:        got.Tags,
		DOI:         "10.1000/xyz",
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	toks := strings.Split(got.Tags, ",")
	sort.Strings(toks)
	assert.Equal(t, []string{"ml", "systems"}, toks)

	byTitle, err := svc.DocumentByTitle(ctx, "  PAPER A ")
	require.NoError(t, err)
	assert.Equal(t, got.ID, byTitle.ID)
}

func TestService_InsertStoresCopy(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	src := writeSource(t, "orig.pdf")
	res, err := svc.InsertDocument(ctx, service.NewDocument{Title: "p", Source: src})
	require.NoError(t, err)

	p, err := svc.StoredPath(res.Document)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(svc.ContentDir(), res.Document.ContentID+".pdf"), p)

	want, err := os.ReadFile(src)
	require.NoError(t, err)
	got, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.FileExists(t, src)
}

func TestService_InsertRollsBackOnCopyFailure(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	// A regular file where the store directory should be makes every Put fail.
	require.NoError(t, os.RemoveAll(svc.ContentDir()))
	require.NoError(t, os.WriteFile(svc.ContentDir(), nil, 0o644))

	_, err := svc.InsertDocument(ctx, service.NewDocument{
		Title:  "paper",
		Tags:   "brand-new",
		Source: writeSource(t, "paper.pdf"),
	})
	require.ErrorIs(t, err, content.ErrIO)

	docs, err := svc.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)

	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags, "tags created by the insert are rolled back")
}

func TestService_InsertDuplicateTitleIsAdvisory(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first := insert(t, svc, "Same Title", "ml")

	res, err := svc.InsertDocument(ctx, service.NewDocument{
		Title:  "same title",
		Source: writeSource(t, "other.pdf"),
		Tags:   "other",
	})
	require.NoError(t, err)
	assert.True(t, res.Existing)
	assert.Equal(t, first.ID, res.Document.ID)

	// Nothing was written.
	_, err = svc.TagByValue(ctx, "other")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	entries, err := os.ReadDir(svc.ContentDir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestService_InsertInvalidSource(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	txt := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	folder := filepath.Join(t.TempDir(), "folder.pdf")
	require.NoError(t, os.Mkdir(folder, 0o755))

	cases := map[string]string{
		"missing":   filepath.Join(t.TempDir(), "missing.pdf"),
		"wrong ext": txt,
		"directory": folder,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.InsertDocument(ctx, service.NewDocument{Title: name, Source: src, Tags: "t"})
			assert.ErrorIs(t, err, validate.ErrInvalidSource)
		})
	}

	// Rejected before any persistence.
	docs, err := svc.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestService_InsertVerifyPDF(t *testing.T) {
	svc, dir := setupService(t)
	ctx := context.Background()

	cfg, err := config.LoadScope(config.ScopeLocal)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("store.verify_pdf", "true"))
	require.NoError(t, cfg.SaveScope(config.ScopeLocal))
	assert.FileExists(t, filepath.Join(dir, ".odin", "config.yaml"))
	require.NoError(t, svc.ReloadConfig())

	_, err = svc.InsertDocument(ctx, service.NewDocument{Title: "fake", Source: writeSource(t, "fake.pdf")})
	assert.ErrorIs(t, err, validate.ErrInvalidSource)

	res, err := svc.InsertDocument(ctx, service.NewDocument{
		Title:  "real",
		Source: filepath.Join("..", "content", "testdata", "two-pages.pdf"),
	})
	require.NoError(t, err)

	info, err := svc.Info(res.Document)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Pages)
	assert.Positive(t, info.Size)
}

func TestService_InsertInvalidFields(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	src := writeSource(t, "p.pdf")

	_, err := svc.InsertDocument(ctx, service.NewDocument{Title: " ", Source: src})
	assert.ErrorIs(t, err, validate.ErrInvalidTitle)

	_, err = svc.InsertDocument(ctx, service.NewDocument{Title: "p", Source: src, Year: 70000})
	assert.ErrorIs(t, err, validate.ErrInvalidField)

	_, err = svc.InsertDocument(ctx, service.NewDocument{Title: "p", Source: src, Volume: -1})
	assert.ErrorIs(t, err, validate.ErrInvalidField)
}

func TestService_InsertCanonicalisesTags(t *testing.T) {
	svc, _ := setupService(t)

	d := insert(t, svc, "p", " ML,,nlp, ml ,")
	assert.Equal(t, "ml,nlp", d.Tags)
}

func TestService_FindByTag(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	insert(t, svc, "a", "ml,nlp")
	insert(t, svc, "b", "html")
	insert(t, svc, "c", "systems")

	docs, err := svc.FindByTag(ctx, "ml", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, titles(docs))

	docs, err = svc.FindByTag(ctx, "ML", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, titles(docs))
}

func TestService_UpdateDocument(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	d := insert(t, svc, "draft", "ml")
	insert(t, svc, "taken", "")

	title := "Final"
	author := "someone"
	year := 2024
	tags := "ml,new-tag"
	got, err := svc.UpdateDocument(ctx, service.ByID(d.ID), service.DocumentUpdate{
		Title: &title, Author: &author, Year: &year, Tags: &tags,
	})
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, "someone", got.Author)
	assert.Equal(t, 2024, got.Year)
	assert.Equal(t, "ml,new-tag", got.Tags)
	assert.Equal(t, d.ContentID, got.ContentID)

	_, err = svc.TagByValue(ctx, "new-tag")
	assert.NoError(t, err)

	taken := "TAKEN"
	_, err = svc.UpdateDocument(ctx, service.ByTitle("final"), service.DocumentUpdate{Title: &taken})
	assert.ErrorIs(t, err, catalog.ErrDuplicateTitle)

	// Same title is not a collision with itself.
	same := "final"
	_, err = svc.UpdateDocument(ctx, service.ByTitle("final"), service.DocumentUpdate{Title: &same})
	assert.NoError(t, err)

	_, err = svc.UpdateDocument(ctx, service.ByID(999), service.DocumentUpdate{Author: &author})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestService_DeleteDocument(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	d := insert(t, svc, "gone", "ml")
	p, err := svc.StoredPath(d)
	require.NoError(t, err)

	res, err := svc.DeleteDocument(ctx, service.ByID(d.ID))
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.NoError(t, res.Cleanup)

	_, err = svc.DocumentByID(ctx, d.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.NoFileExists(t, p)

	_, err = svc.StoredPath(d)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	// Tags are not touched by document deletes.
	_, err = svc.TagByValue(ctx, "ml")
	assert.NoError(t, err)
}

func TestService_DeleteDocumentMissingFile(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	d := insert(t, svc, "orphan", "")
	p, err := svc.StoredPath(d)
	require.NoError(t, err)
	require.NoError(t, os.Remove(p))

	res, err := svc.DeleteDocument(ctx, service.ByTitle("orphan"))
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.ErrorIs(t, res.Cleanup, content.ErrMissing)

	_, err = svc.DocumentByID(ctx, d.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestService_DeleteDocumentMissing(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	res, err := svc.DeleteDocument(ctx, service.ByTitle("never existed"))
	require.NoError(t, err)
	assert.False(t, res.Deleted)

	_, err = svc.DeleteDocument(ctx, service.ByID(42))
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = svc.DeleteDocument(ctx, service.Ref{})
	assert.ErrorIs(t, err, catalog.ErrEmptyRef)
}

func TestService_ContentDirFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	storeDir := filepath.Join(t.TempDir(), "elsewhere")
	t.Setenv(config.EnvStoreDir, storeDir)

	_, err := catalog.Init(false, false, dir)
	require.NoError(t, err)
	svc, err := catalog.New(dir)
	require.NoError(t, err)
	defer svc.Close()
	defer config.SetRoot("")

	assert.Equal(t, storeDir, svc.ContentDir())
	assert.DirExists(t, storeDir)
}

func TestService_ContentDirUncreatable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	t.Setenv(config.EnvStoreDir, filepath.Join(blocker, "sub"))
	defer config.SetRoot("")

	_, err := catalog.Init(false, false, dir)
	assert.ErrorIs(t, err, content.ErrIO)

	// The database was written before the store failed; opening it reports
	// the same problem.
	_, err = catalog.New(dir)
	assert.ErrorIs(t, err, content.ErrIO)
}

func TestService_InitCreatesContentDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvStoreDir, "")
	dir := t.TempDir()
	defer config.SetRoot("")

	paths, err := catalog.Init(false, false, dir)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(paths.Dir, repo.ContentDir))
}

func TestService_NotInitialised(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := catalog.New(t.TempDir())
	assert.Error(t, err)
}
