// Package log provides centralised audit logging for odin operations.
// Logs are stored in ~/.odin/log/odin-log.db and track all CLI commands
// and MCP tool invocations across catalogs.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("doc:add", "insert").
//		Author(cmd.Author()).
//		Target(title).
//		ResultID(res.Document.ID).
//		Write(err)
//
//	log.Event("tag:modify", "rename").
//		Author(cmd.Author()).
//		Target(old).
//		Detail("new", newValue).
//		Detail("documents", len(res.Rewrites)).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "doc:add", "tag:rm",
// "mcp:odin_docs".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "doc:add", "mcp:odin_tag_delete"
	Author string // who performed the action
	Action string // verb: insert, update, delete, rename, list, etc.
	Target string // input: title or tag value requested
	ID     int64  // input: record id requested

	// Output field - populated after operation succeeds
	ResultID int64 // output: id created or accessed

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "doc:add", "tag:ls")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:odin_doc_get")
//   - Background work: "catalog:{step}" (e.g., "catalog:cleanup")
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
//
// For CLI commands, use cmd.Author() which returns the configured author.
// For MCP tools, use "mcp" as the author.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Target sets the title or tag value this operation addresses.
// Leave unset for operations that don't target a record (e.g., config).
func (b *Builder) Target(target string) *Builder {
	b.entry.Target = target
	return b
}

// ID sets the record id the caller asked for.
func (b *Builder) ID(id int64) *Builder {
	b.entry.ID = id
	return b
}

// ResultID sets the id of the record the operation created or touched.
func (b *Builder) ResultID(id int64) *Builder {
	b.entry.ResultID = id
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// search fragments, result counts, rewritten documents and so on.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
//	doc, err := svc.Document(ctx, ref)
//	log.Event("doc:show", "read").Target(ref.Title).ID(ref.ID).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path to the .odin directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
