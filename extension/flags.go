// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagDryRun = "dry-run" // Preview without making changes
	FlagExact  = "exact"   // Whole-tag match instead of substring
	FlagLocal  = "local"   // Use local scope (gitignored)
	FlagShare  = "share"   // Mark database as committed

	// String flags

	FlagAuthor      = "author"      // Document author (doc add/modify)
	FlagDOI         = "doi"         // Digital object identifier
	FlagNewTitle    = "new-title"   // Replacement title (doc modify)
	FlagPath        = "path"        // Source file path
	FlagPublication = "publication" // Journal, venue or publisher
	FlagTag         = "tag"         // Tag fragment filter
	FlagTags        = "tags"        // Comma-separated tag list
	FlagTitle       = "title"       // Document title reference
	FlagTOML        = "toml"        // Bulk import file
	FlagValue       = "value"       // Tag value reference

	// Integer flags

	FlagID     = "id"     // Record id reference
	FlagVolume = "volume" // Volume number
	FlagYear   = "year"   // Publication year
)
