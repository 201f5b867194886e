package models

// RegisterRequest is the payload for creating a new user account.
// The user identifier is derived from Name server-side.
type RegisterRequest struct {
	Name           string `json:"name"`
	PIN            string `json:"pin"`
	RemoteUsername string `json:"cv_username"`
	RemotePassword string `json:"cv_password"`
}

// LoginRequest is the payload for the PIN login check.
type LoginRequest struct {
	UserID string `json:"user_id"`
	PIN    string `json:"pin"`
}

// UpdatePINRequest changes the user's PIN. The old PIN must match the
// stored one and the new PIN must be at least four characters long.
type UpdatePINRequest struct {
	OldPIN string `json:"old_pin"`
	NewPIN string `json:"new_pin"`
}

// UpdatePeriodRequest switches the user's academic period setting.
type UpdatePeriodRequest struct {
	AcademicPeriod string `json:"academic_period"`
}

// ManualTaskRequest is the payload for creating a manual task.
// The identifier and the manual marker are assigned server-side.
type ManualTaskRequest struct {
	Title       string `json:"title"`
	Start       string `json:"start"`
	Kind        string `json:"tipo"`
	SubjectDesc string `json:"materia_desc"`
	AuthorDesc  string `json:"autore_desc"`
}

// StatusUpdateRequest upserts both completion flags for one event.
// Partial updates are not supported: the caller always supplies both
// booleans.
type StatusUpdateRequest struct {
	EventID   string `json:"ev_id"`
	Started   bool   `json:"iniziata"`
	Completed bool   `json:"completata"`
}
