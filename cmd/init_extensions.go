/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Extensions register during init() but aren't initialised until first
// command execution. This two-phase pattern allows extensions to declare
// commands before the catalog exists. The service is created once and
// shared across all extensions via the Context.

package cmd

import (
	"sync"

	"github.com/jpl-au/odin/extension"
	"github.com/jpl-au/odin/internal/catalog"
	"github.com/jpl-au/odin/internal/config"
	"github.com/jpl-au/odin/internal/log"
)

// noStoreCommands lists commands that bypass automatic catalog initialisation.
// Built dynamically from bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip catalog
// initialisation: bootstrap commands (init, guide, config) that must work
// before a catalog exists, plus commands declared by extensions
// implementing extension.Storeless.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":   true,
		"guide":  true,
		"config": true,
		"help":   true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *catalog.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the catalog and injects it into extensions.
//
// repo.ErrNotInitialised and content directory failures are returned as is
// so the user sees why the command could not start.
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := catalog.New(Dir())
		if err != nil {
			initErr = err
			return
		}
		extService = svc

		log.SetProject(svc.Paths().Dir)

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(svc, svc.DB(), cfg)
		svc.SetExtensionContext(extContext)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = err
					return
				}
			}
		}
	})
	return initErr
}

// Service returns the shared catalog service, opening it if needed.
// Storeless commands that still want the catalog call this.
func Service() (*catalog.Service, error) {
	if err := initExtensions(); err != nil {
		return nil, err
	}
	return extService, nil
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		noStoreCommands = buildNoStoreCommands()
	})
}
