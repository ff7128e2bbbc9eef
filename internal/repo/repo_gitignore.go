// repo_gitignore.go manages .odin/.gitignore.
//
// Stored PDFs and local config never belong in git. The database is shared
// by default; `odin init --local` adds it to the ignore list as well.

package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const gitignoreBody = `# odin - ignore stored documents and local config
# The catalog database is committed unless initialised with --local
` + ContentDir + `/
config.yaml
*.db-wal
*.db-shm
`

const localDBHeader = "# Local database (not committed)"

// writeGitignore creates .gitignore on first init only, so custom entries
// survive a --force reinit.
func writeGitignore(dir string) error {
	path := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := os.WriteFile(path, []byte(gitignoreBody), 0644); err != nil {
		return fmt.Errorf("write gitignore: %w", err)
	}
	return nil
}

// IgnoreDB adds the database to .gitignore.
func IgnoreDB(dir string) error {
	path := filepath.Join(dir, ".gitignore")
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	s := string(content)

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	if slices.Contains(lines, DBFile) {
		return nil
	}
	if !slices.Contains(lines, localDBHeader) {
		s += "\n" + localDBHeader + "\n"
	}
	s += DBFile + "\n"
	return os.WriteFile(path, []byte(s), 0644)
}

// IsIgnored reports whether the database is listed in .gitignore.
func IsIgnored(dir string) (bool, error) {
	content, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == DBFile {
			return true, nil
		}
	}
	return false, nil
}

// ShareDB removes the database from .gitignore so it is committed.
func ShareDB(dir string) error {
	path := filepath.Join(dir, ".gitignore")
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var kept []string
	for _, line := range strings.Split(string(content), "\n") {
		t := strings.TrimSpace(line)
		if t == DBFile || t == localDBHeader {
			continue
		}
		kept = append(kept, line)
	}
	s := strings.TrimRight(strings.Join(kept, "\n"), "\n") + "\n"
	return os.WriteFile(path, []byte(s), 0644)
}
