package log

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the logger at a temp database for the test.
func useTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = orig
	})
}

func openLogDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLogger(t *testing.T) {
	useTempDB(t)

	t.Run("open and close", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		SetProject("/test/project/.odin")

		Log(Entry{
			Source:  "doc:show",
			Author:  "test-user",
			Action:  "read",
			Target:  "attention is all you need",
			ID:      3,
			Success: true,
		})

		db := openLogDB(t)
		var source, action, target string
		var id int64
		var success int
		err := db.QueryRow("SELECT source, action, target, ref_id, success FROM log WHERE id = 1").
			Scan(&source, &action, &target, &id, &success)
		require.NoError(t, err)
		assert.Equal(t, "doc:show", source)
		assert.Equal(t, "read", action)
		assert.Equal(t, "attention is all you need", target)
		assert.Equal(t, int64(3), id)
		assert.Equal(t, 1, success)
	})

	t.Run("log without logger is noop", func(t *testing.T) {
		Close()

		// Should not panic
		Log(Entry{Source: "test:cmd", Action: "test", Success: true})
	})

	t.Run("open is idempotent", func(t *testing.T) {
		require.NoError(t, Open())
		require.NoError(t, Open())
		Close()
	})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/papers/.odin")
	h2 := hash("/home/user/papers/.odin")
	h3 := hash("/home/user/other/.odin")

	assert.Equal(t, h1, h2, "same input should produce same hash")
	assert.NotEqual(t, h1, h3, "different input should produce different hash")
	assert.Len(t, h1, 16, "BLAKE2b-64 should produce 16 hex chars")
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	orig := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = orig }()

	assert.Equal(t, filepath.Join(home, ".odin", "log", "odin-log.db"), DBPath())
}

func TestBuilder(t *testing.T) {
	useTempDB(t)

	t.Run("fluent API success", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		SetProject("/test/project/.odin")

		Event("doc:add", "insert").
			Author("test-user").
			Target("paper").
			ResultID(7).
			Write(nil)

		db := openLogDB(t)
		var source, author, target string
		var resultID int64
		var success int
		err := db.QueryRow("SELECT source, author, target, result_id, success FROM log ORDER BY id DESC LIMIT 1").
			Scan(&source, &author, &target, &resultID, &success)
		require.NoError(t, err)
		assert.Equal(t, "doc:add", source)
		assert.Equal(t, "test-user", author)
		assert.Equal(t, "paper", target)
		assert.Equal(t, int64(7), resultID)
		assert.Equal(t, 1, success)
	})

	t.Run("fluent API with error", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		testErr := errors.New("not found")
		Event("tag:rm", "delete").Target("ml").Write(testErr)

		db := openLogDB(t)
		var success int
		var errMsg string
		err := db.QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").
			Scan(&success, &errMsg)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, "not found", errMsg)
	})

	t.Run("fluent API with Detail", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("tag:modify", "rename").
			Target("ml").
			Detail("new", "machine-learning").
			Detail("documents", 42).
			Write(nil)

		db := openLogDB(t)
		var detail string
		err := db.QueryRow("SELECT detail FROM log ORDER BY id DESC LIMIT 1").Scan(&detail)
		require.NoError(t, err)
		assert.Contains(t, detail, "machine-learning")
		assert.Contains(t, detail, "42")
	})
}
