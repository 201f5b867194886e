package models

// StatusResponse is the generic "status: ok" envelope the original
// API wraps simple acknowledgements in.
type StatusResponse struct {
	Status string `json:"status"`
}

// LoginResponse is returned after a successful PIN check. Token is the
// signed session JWT; User carries only public fields.
type LoginResponse struct {
	Status string `json:"status"`
	Token  string `json:"token,omitempty"`
	User   User   `json:"user"`
}

// TaskResponse wraps a freshly created manual task.
type TaskResponse struct {
	Status string `json:"status"`
	Task   Task   `json:"task"`
}

// AttachmentResponse wraps a freshly registered attachment descriptor.
type AttachmentResponse struct {
	Status     string     `json:"status"`
	Attachment Attachment `json:"attachment"`
}

// AvatarResponse reports the retrieval path of an uploaded avatar.
type AvatarResponse struct {
	Status    string `json:"status"`
	AvatarURL string `json:"avatar_url"`
}

// SyncResponse reports the outcome of a completed sync cycle.
type SyncResponse struct {
	Status string `json:"status"`
	SyncResult
}
