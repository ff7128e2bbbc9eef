// Package catalog provides the tag and document catalog operations backed by
// a Store implementation and a content store. Its Service is the single
// entry point for the CLI, the MCP server and extensions; it implements
// service.Service.
//
// The Service holds only the database handle, the content store and a few
// config values. It caches no rows, so several processes (a CLI, an MCP
// server, a GUI worker) can share one catalog file.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpl-au/odin/extension"
	"github.com/jpl-au/odin/internal/config"
	"github.com/jpl-au/odin/internal/content"
	"github.com/jpl-au/odin/internal/log"
	"github.com/jpl-au/odin/internal/repo"
	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
)

// Compile-time interface compliance check.
var _ service.Service = (*Service)(nil)

// Service provides catalog operations backed by a Store.
type Service struct {
	store     *store.SQLiteStore
	content   *content.Store
	paths     repo.Paths
	verifyPDF bool
	maxSource int64
	extCtx    extension.Context // for firing events to extensions
}

// New creates a Service for the repository found by walking up from start
// (empty for the working directory). Returns repo.ErrNotInitialised if no
// catalog is found, and a content.ErrIO error if the content directory
// cannot be created.
func New(start string) (*Service, error) {
	paths, err := repo.Discover(start)
	if err != nil {
		return nil, err
	}

	config.SetRoot(paths.Root)
	cfg, err := config.Load()
	if err != nil {
		return nil, err // config.Load provides detailed, actionable error messages
	}

	cs, err := content.New(cfg.StoreDir(paths.Root, paths.Dir))
	if err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}

	s, err := store.Open(paths.DB)
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		s.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}

	return &Service{
		store:     s,
		content:   cs,
		paths:     paths,
		verifyPDF: cfg.VerifyPDF(),
		maxSource: cfg.MaxSource(),
	}, nil
}

// Init initialises a new odin catalog in dir (empty for the current
// directory) and creates its content directory. If local is true, the
// database is added to .gitignore. A content directory that cannot be
// created returns a content.ErrIO error.
func Init(force, local bool, dir string) (repo.Paths, error) {
	paths, err := repo.Init(force, local, dir)
	if err != nil {
		return paths, err
	}

	config.SetRoot(paths.Root)
	cfg, err := config.Load()
	if err != nil {
		return paths, err
	}
	if _, err := content.New(cfg.StoreDir(paths.Root, paths.Dir)); err != nil {
		return paths, fmt.Errorf("content directory: %w", err)
	}
	return paths, nil
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").
			Detail("error", err.Error()).
			Write(err)
	}
	return s.store.Close()
}

// ReloadConfig reloads configuration from disk and updates cached values.
// The content directory is not changed.
func (s *Service) ReloadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.verifyPDF = cfg.VerifyPDF()
	s.maxSource = cfg.MaxSource()
	return nil
}

// SetExtensionContext sets the extension context for firing events.
// Called from cmd/root.go after creating the context.
func (s *Service) SetExtensionContext(ctx extension.Context) {
	s.extCtx = ctx
}

// DB returns the underlying database connection for extensions.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

// Paths returns the discovered repository locations.
func (s *Service) Paths() repo.Paths {
	return s.paths
}

// ContentDir returns the directory holding stored files.
func (s *Service) ContentDir() string {
	return s.content.Dir()
}

// Stats returns row counts for both catalogs.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}

// fireEvent notifies all registered extension event handlers.
// Handler errors are logged, not propagated: the change is already committed.
func (s *Service) fireEvent(e extension.Event) {
	if s.extCtx == nil {
		return
	}
	for _, nh := range extension.Handlers() {
		if err := nh.Handler.HandleEvent(s.extCtx, e); err != nil {
			log.Event("event:error", "error").
				Detail("ext", nh.Name).
				Detail("event", string(e.EventType())).
				Target(e.EventTarget()).
				Write(err)
		}
	}
}
