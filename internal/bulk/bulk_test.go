package bulk

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
	"github.com/jpl-au/odin/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog accepts any entry with a title whose source exists.
type fakeCatalog struct {
	inserted []service.NewDocument
	existing map[string]bool
	failOn   string
}

func (f *fakeCatalog) CheckDocument(d service.NewDocument) error {
	if strings.TrimSpace(d.Title) == "" {
		return validate.ErrInvalidTitle
	}
	if _, err := os.Stat(d.Source); err != nil {
		return validate.ErrInvalidSource
	}
	return nil
}

func (f *fakeCatalog) InsertDocument(_ context.Context, d service.NewDocument) (*service.InsertResult, error) {
	if d.Title == f.failOn {
		return nil, errors.New("boom")
	}
	doc := store.Document{ID: int64(len(f.inserted) + 1), Title: d.Title}
	if f.existing[d.Title] {
		return &service.InsertResult{Document: doc, Existing: true}, nil
	}
	f.inserted = append(f.inserted, d)
	return &service.InsertResult{Document: doc}, nil
}

// writeManifest creates a manifest plus the PDFs it names in a temp dir.
func writeManifest(t *testing.T, body string, pdfs ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, p := range pdfs {
		full := filepath.Join(dir, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("%PDF-1.4"), 0644))
	}
	path := filepath.Join(dir, "docs.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

const twoDocs = `
[[documents]]
title = "paper one"
path = "a.pdf"
author = "Ada"
year = 2020
tags = "ml"

[[documents]]
title = "paper two"
path = "sub/b.pdf"
volume = 3
doi = "10.1/x"
`

func TestLoad(t *testing.T) {
	path := writeManifest(t, twoDocs, "a.pdf", "sub/b.pdf")

	m, err := Load(path)
	require.NoError(t, err)
	require.Len(t, m.Documents, 2)

	dir := filepath.Dir(path)
	assert.Equal(t, filepath.Join(dir, "a.pdf"), m.Documents[0].Path)
	assert.Equal(t, filepath.Join(dir, "sub", "b.pdf"), m.Documents[1].Path)
	assert.Equal(t, 2020, m.Documents[0].Year)
	assert.Equal(t, 0, m.Documents[1].Year)
	assert.Equal(t, "", m.Documents[1].Author)
	assert.Equal(t, 3, m.Documents[1].Volume)
}

func TestLoadAbsolutePathKept(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "x.pdf")
	path := writeManifest(t, "[[documents]]\ntitle = \"x\"\npath = '"+abs+"'\n")

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, abs, m.Documents[0].Path)
}

func TestLoadRejectsWrongExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.txt")
	require.NoError(t, os.WriteFile(path, []byte(twoDocs), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDecodeStrict(t *testing.T) {
	_, err := Decode(strings.NewReader("[[documents]]\ntitle = \"x\"\ncolour = \"red\"\n"))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "colour")
}

func TestDecodeIgnoresID(t *testing.T) {
	m, err := Decode(strings.NewReader("[[documents]]\nid = 7\ntitle = \"x\"\npath = \"x.pdf\"\n"))
	require.NoError(t, err)
	require.Len(t, m.Documents, 1)
	assert.Equal(t, "x", m.Documents[0].Title)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader("[[documents]\n"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDecodeWrongType(t *testing.T) {
	_, err := Decode(strings.NewReader("[[documents]]\ntitle = \"x\"\nyear = \"soon\"\n"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRun(t *testing.T) {
	path := writeManifest(t, twoDocs, "a.pdf", "sub/b.pdf")
	m, err := Load(path)
	require.NoError(t, err)

	fake := &fakeCatalog{}
	res, err := Run(context.Background(), fake, m, Options{Progress: &bytes.Buffer{}})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Checked)
	assert.Len(t, res.Inserted, 2)
	require.Len(t, fake.inserted, 2)
	assert.Equal(t, "paper one", fake.inserted[0].Title)
	assert.Equal(t, "ml", fake.inserted[0].Tags)
	assert.Equal(t, "10.1/x", fake.inserted[1].DOI)
}

func TestRunValidatesBeforeInserting(t *testing.T) {
	// second entry's file is missing
	path := writeManifest(t, twoDocs, "a.pdf")
	m, err := Load(path)
	require.NoError(t, err)

	fake := &fakeCatalog{}
	_, err = Run(context.Background(), fake, m, Options{})
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validate.ErrInvalidSource)
	assert.Contains(t, err.Error(), "entry 2")
	assert.Empty(t, fake.inserted)
}

func TestRunRejectsRepeatedTitles(t *testing.T) {
	body := "[[documents]]\ntitle = \"Same\"\npath = \"a.pdf\"\n[[documents]]\ntitle = \"same\"\npath = \"a.pdf\"\n"
	path := writeManifest(t, body, "a.pdf")
	m, err := Load(path)
	require.NoError(t, err)

	fake := &fakeCatalog{}
	_, err = Run(context.Background(), fake, m, Options{})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, fake.inserted)
}

func TestRunEmpty(t *testing.T) {
	_, err := Run(context.Background(), &fakeCatalog{}, &Manifest{}, Options{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRunDryRun(t *testing.T) {
	path := writeManifest(t, twoDocs, "a.pdf", "sub/b.pdf")
	m, err := Load(path)
	require.NoError(t, err)

	fake := &fakeCatalog{}
	res, err := Run(context.Background(), fake, m, Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Checked)
	assert.Empty(t, fake.inserted)
}

func TestRunCountsExisting(t *testing.T) {
	path := writeManifest(t, twoDocs, "a.pdf", "sub/b.pdf")
	m, err := Load(path)
	require.NoError(t, err)

	fake := &fakeCatalog{existing: map[string]bool{"paper one": true}}
	res, err := Run(context.Background(), fake, m, Options{Progress: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Existing)
	assert.Len(t, res.Inserted, 1)
}

func TestRunInsertFailure(t *testing.T) {
	path := writeManifest(t, twoDocs, "a.pdf", "sub/b.pdf")
	m, err := Load(path)
	require.NoError(t, err)

	fake := &fakeCatalog{failOn: "paper two"}
	res, err := Run(context.Background(), fake, m, Options{Progress: &bytes.Buffer{}})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "entry 2")
	assert.Len(t, res.Inserted, 1)
}
