package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "ml", "ml", false},
		{"normalised", "  Machine-Learning ", "machine-learning", false},
		{"empty", "", "", true},
		{"whitespace", "   ", "", true},
		{"comma", "a,b", "", true},
		{"null byte", "a\x00b", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tag(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTag)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTags(t *testing.T) {
	got, err := Tags(" ML, nlp,,ml")
	require.NoError(t, err)
	assert.Equal(t, "ml,nlp", got)

	got, err = Tags("")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = Tags("ok,bad\x00")
	assert.ErrorIs(t, err, ErrInvalidTag)
}

func TestTitle(t *testing.T) {
	got, err := Title("  Attention Is All You Need ")
	require.NoError(t, err)
	assert.Equal(t, "attention is all you need", got)

	_, err = Title(" ")
	assert.ErrorIs(t, err, ErrInvalidTitle)

	_, err = Title("a\x00")
	assert.ErrorIs(t, err, ErrInvalidTitle)
}

func TestField(t *testing.T) {
	assert.NoError(t, Field("year", 0))
	assert.NoError(t, Field("year", MaxField))
	assert.ErrorIs(t, Field("year", -1), ErrInvalidField)
	assert.ErrorIs(t, Field("volume", MaxField+1), ErrInvalidField)
}

func TestSource(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "paper.PDF")
	require.NoError(t, os.WriteFile(pdf, []byte(strings.Repeat("x", 10)), 0o644))
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	sub := filepath.Join(dir, "folder.pdf")
	require.NoError(t, os.Mkdir(sub, 0o755))

	info, err := Source(pdf, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(10), info.Size())

	_, err = Source(pdf, 5)
	assert.ErrorIs(t, err, ErrInvalidSource)

	_, err = Source(txt, 0)
	assert.ErrorIs(t, err, ErrInvalidSource)

	_, err = Source(sub, 0)
	assert.ErrorIs(t, err, ErrInvalidSource)

	_, err = Source(filepath.Join(dir, "missing.pdf"), 0)
	assert.ErrorIs(t, err, ErrInvalidSource)

	_, err = Source("", 0)
	assert.ErrorIs(t, err, ErrInvalidSource)
}
