// Package all imports all core odin extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/odin/extension/core"
	_ "github.com/jpl-au/odin/extension/document"
	_ "github.com/jpl-au/odin/extension/tag"
)
