package models

import "strings"

// ManualTaskPrefix is the identifier namespace reserved for locally
// created tasks. The remote portal assigns numeric event identifiers,
// so any identifier carrying this prefix can never collide with a
// remote one, and merged views may trust the namespaces instead of
// deduplicating per read.
const ManualTaskPrefix = "manual_"

// Task is a single agenda event: either a homework record fetched from
// the remote portal or a task the user created by hand. Both shapes are
// identical on the wire except for the IsManual marker.
type Task struct {
	// ID is the event identifier. Remote records keep the identifier
	// assigned by the portal; manual tasks get a [ManualTaskPrefix]ed
	// identifier generated locally at creation time.
	ID string `json:"id"`

	// Title is the free-form description of the work to do.
	Title string `json:"title"`

	// Start is the scheduled date/time in "2006-01-02 15:04" form,
	// passed through verbatim from the portal or the caller.
	Start string `json:"start"`

	// Kind is the event type tag, e.g. "compiti" for homework.
	Kind string `json:"tipo"`

	// SubjectDesc is the school subject description.
	SubjectDesc string `json:"materia_desc"`

	// AuthorDesc is the teacher/author description.
	AuthorDesc string `json:"autore_desc"`

	// IsManual marks locally authored tasks. Sync never touches
	// records carrying this flag.
	IsManual bool `json:"is_manual,omitempty"`
}

// IsManualTaskID reports whether id belongs to the manual namespace.
func IsManualTaskID(id string) bool {
	return strings.HasPrefix(id, ManualTaskPrefix)
}
