// env.go resolves settings that may come from the environment.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables recognised by odin.
const (
	EnvStoreDir = "ODIN_STORE_DIR"
	EnvDir      = "ODIN_DIR"
)

// EnvFile is the dotenv file read from the working directory.
const EnvFile = ".env"

// LoadEnv reads dir/.env into the process environment. Variables already set
// keep their values. A missing file is not an error.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, EnvFile)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// StoreDir resolves the content directory for the repository rooted at
// repoRoot whose metadata lives in odinDir. Precedence: ODIN_STORE_DIR, then
// store.dir, then <odinDir>/documents.
func (c *Config) StoreDir(repoRoot, odinDir string) string {
	dir := os.Getenv(EnvStoreDir)
	if dir == "" {
		dir = c.Store.Dir
	}
	if dir == "" {
		return filepath.Join(odinDir, "documents")
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(repoRoot, dir)
	}
	return dir
}
