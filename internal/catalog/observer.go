package catalog

import "time"

// EventType represents the mutation lifecycle events a catalog emits.
type EventType string

const (
	EventTableCreated  EventType = "table_created"
	EventTableUpdated  EventType = "table_updated"
	EventTableDeleted  EventType = "table_deleted"
	EventFieldAdded    EventType = "field_added"
	EventFieldUpdated  EventType = "field_updated"
	EventFieldDeleted  EventType = "field_deleted"
	EventRecordCreated EventType = "record_created"
	EventRecordUpdated EventType = "record_updated"
	EventRecordDeleted EventType = "record_deleted"
	EventViewCreated   EventType = "view_created"
	EventViewDeleted   EventType = "view_deleted"
)

// Event represents one catalog mutation.
type Event struct {
	Type      EventType   // Type of event
	TableID   string      // Owning table (empty for table-level events, where EntityID is the table)
	EntityID  string      // Id of the mutated entity
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Event-specific data (e.g., field name, value summary)
}

// Observer interface for event subscribers.
// Observers receive events after each successful mutation.
type Observer interface {
	OnEvent(event Event)
}
