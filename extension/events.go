// events.go defines the event types for extension notifications.
//
// Separated from extension.go to isolate the event system. Events enable
// extensions to react to catalog changes without modifying core logic.
//
// Events are fire-and-forget notifications, not approval requests. They are
// delivered after the change has been committed.

package extension

// EventType identifies the kind of event.
type EventType string

const (
	EventDocumentInsert EventType = "document:insert"
	EventDocumentUpdate EventType = "document:update"
	EventDocumentDelete EventType = "document:delete"
	EventTagAdd         EventType = "tag:add"
	EventTagRename      EventType = "tag:rename"
	EventTagDelete      EventType = "tag:delete"
	EventTagSync        EventType = "tag:sync"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	// EventTarget is the title or tag value the event concerns.
	EventTarget() string
}

// DocumentEvent is fired after a document is inserted, updated or deleted.
type DocumentEvent struct {
	Type      EventType
	ID        int64
	Title     string
	ContentID string
}

func (e DocumentEvent) EventType() EventType { return e.Type }
func (e DocumentEvent) EventTarget() string  { return e.Title }

// TagEvent is fired after a tag is created, renamed or deleted. Old is set
// only for renames.
type TagEvent struct {
	Type  EventType
	ID    int64
	Value string
	Old   string
}

func (e TagEvent) EventType() EventType { return e.Type }
func (e TagEvent) EventTarget() string  { return e.Value }

// TagSyncEvent is fired for every document whose tag string was rewritten
// by a tag rename or delete.
type TagSyncEvent struct {
	Tag        string
	DocumentID int64
	Title      string
	Before     string
	After      string
}

func (e TagSyncEvent) EventType() EventType { return EventTagSync }
func (e TagSyncEvent) EventTarget() string  { return e.Title }

// EventHandler is implemented by extensions that want to receive events.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}
