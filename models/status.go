package models

// EventStatus holds the user's completion flags for one agenda event.
// Entries are keyed by event identifier and survive syncs that drop the
// referenced event: stale progress is preserved rather than lost.
type EventStatus struct {
	// Started reports that the user has begun working on the event.
	Started bool `json:"iniziata"`

	// Completed reports that the user has finished the event.
	Completed bool `json:"completata"`
}

// StatusMap is the full per-user status overlay, keyed by event
// identifier (remote or manual).
type StatusMap map[string]EventStatus
