package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB(t *testing.T) {
	env := newTestEnv(t)
	env.run("tag", "add", "ml")

	out := env.run("db")
	env.contains(out, "odin.db")
	env.contains(out, "0 documents, 1 tags")

	var st struct {
		Local bool `json:"local"`
		Stats struct {
			Tags int64 `json:"tags"`
		} `json:"stats"`
	}
	env.runJSON(&st, "db")
	assert.False(t, st.Local)
	assert.EqualValues(t, 1, st.Stats.Tags)
}

func TestDB_LocalShare(t *testing.T) {
	env := newTestEnv(t)
	gitignore := filepath.Join(env.dir, ".odin", ".gitignore")

	env.run("db", "--local")
	data, err := os.ReadFile(gitignore)
	require.NoError(t, err)
	assert.Contains(t, string(data), "odin.db")

	env.run("db", "--share")
	data, err = os.ReadFile(gitignore)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "odin.db")

	_, err = env.runErr("db", "--local", "--share")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("version")
	env.contains(out, "odin")
}
