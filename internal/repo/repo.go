// Package repo provides repository initialisation and discovery for odin.
//
// An odin repository is a .odin directory holding the catalog database, an
// optional local config file and, by default, the content directory.
//
// The discovery algorithm mirrors git's approach: starting from a directory,
// walk up until a .odin directory containing the database is found, or the
// filesystem root is reached.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/odin/internal/store"
)

const (
	// Dir is the directory name for the odin repository.
	Dir = ".odin"
	// DBFile is the catalog database filename.
	DBFile = "odin.db"
	// ContentDir is the default content directory inside Dir.
	ContentDir = "documents"
)

// ErrNotInitialised is returned when no odin repository is found.
var ErrNotInitialised = errors.New("odin not initialised (run 'odin init')")

// Paths locates the parts of a discovered repository.
type Paths struct {
	Root string // directory containing .odin
	Dir  string // the .odin directory
	DB   string // the catalog database file
}

func pathsFor(root string) Paths {
	dir := filepath.Join(root, Dir)
	return Paths{Root: root, Dir: dir, DB: filepath.Join(dir, DBFile)}
}

// Init initialises a new odin repository in dir (empty for the current
// directory). Config is not written; that is `odin config`'s job.
//
// Reinitialising with force replaces the database. Stored content files are
// left in place.
func Init(force, local bool, dir string) (Paths, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Paths{}, fmt.Errorf("resolve %s: %w", dir, err)
	}
	p := pathsFor(abs)

	if _, err := os.Stat(p.DB); err == nil {
		if !force {
			return p, fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFile)
		}
		for _, f := range []string{p.DB, p.DB + "-wal", p.DB + "-shm"} {
			if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
				return p, fmt.Errorf("remove database: %w", err)
			}
		}
	}

	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return p, fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(p.DB)
	if err != nil {
		return p, fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return p, fmt.Errorf("init store: %w", err)
	}

	if err := writeGitignore(p.Dir); err != nil {
		return p, err
	}
	if local {
		if err := IgnoreDB(p.Dir); err != nil {
			return p, fmt.Errorf("ignore database: %w", err)
		}
	}
	return p, nil
}

// Discover walks up from start (empty for the working directory) looking
// for .odin/odin.db.
func Discover(start string) (Paths, error) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Paths{}, fmt.Errorf("get working directory: %w", err)
		}
		start = wd
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return Paths{}, fmt.Errorf("resolve %s: %w", start, err)
	}

	for {
		p := pathsFor(dir)
		if _, err := os.Stat(p.DB); err == nil {
			return p, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Paths{}, ErrNotInitialised
		}
		dir = parent
	}
}
