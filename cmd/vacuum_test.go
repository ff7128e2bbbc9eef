package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVacuum(t *testing.T) {
	env := newTestEnv(t)
	env.run("doc", "add", "--path", env.pdf("a.pdf"), "--title", "attention")

	orphan := filepath.Join(env.dir, ".odin", "documents", "00000000-0000-0000-0000-000000000000.pdf")
	require.NoError(t, os.WriteFile(orphan, []byte("%PDF-1.4"), 0o644))

	out := env.run("vacuum", "--dry-run")
	env.contains(out, "Would remove: 00000000-0000-0000-0000-000000000000")
	assert.FileExists(t, orphan)

	out, err := env.runStdinErr("n\n", "vacuum")
	require.NoError(t, err)
	env.contains(out, "Cancelled")
	assert.FileExists(t, orphan)

	out = env.run("vacuum", "--force")
	env.contains(out, "Vacuumed 1 file(s)")
	assert.NoFileExists(t, orphan)
	assert.Len(t, env.storedFiles(), 1, "referenced files are kept")

	out = env.run("vacuum", "--force")
	env.contains(out, "No orphaned files")
}

func TestVacuum_JSONNeedsForce(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runErr("vacuum", "-o", "json")
	assert.Error(t, err)
}
