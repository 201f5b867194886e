package models

// SyncResult reports how many records one sync cycle replaced.
// Counts refer to the freshly written datasets, not to deltas.
type SyncResult struct {
	// HomeworkCount is the size of the new homework dataset.
	HomeworkCount int `json:"homework_count"`

	// GradeCount is the size of the new grade dataset.
	GradeCount int `json:"grades_count"`
}
