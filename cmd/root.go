/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// PersistentPreRunE opens the catalog lazily: only commands that need it
// trigger extension init, so bootstrap commands (init, guide, config) work
// before a catalog exists. The noStoreCommands map controls which commands
// skip initialisation.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/odin/internal/config"
	"github.com/jpl-au/odin/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "odin",
	Short: "Catalogue PDF documents with metadata and tags",
	Long: `odin keeps a catalog of PDF documents with bibliographic metadata and tags.
Sources are copied into a content store; records live in a local SQLite database.

Run 'odin guide' to get started.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		if author == "" {
			author = detectAuthor()
		}

		// Initialise extensions for commands that need the catalog
		if !noStoreCommands[topLevelCmdName(cmd)] {
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return err
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "odin tag add ml", returns "tag".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Loads .env, opens audit logging, registers extensions, executes the
// command, and closes the catalog before exit. Exit code 1 indicates error.
func Execute() {
	if err := config.LoadEnv(""); err != nil {
		Warn("%v", err)
	}

	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		Warn("audit log unavailable: %v", err)
	}
	defer log.Close()

	registerExtensions()
	err := rootCmd.Execute()

	if extService != nil {
		if closeErr := extService.Close(); closeErr != nil {
			Warn("closing catalog: %v", closeErr)
		}
	}

	if err != nil {
		log.Close()
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
