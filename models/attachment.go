package models

// Attachment describes one uploaded file tied to an agenda event.
// The descriptor is registered only after the file bytes have been
// fully written to the attachment area.
type Attachment struct {
	// StoredName is the filesystem-safe unique name the file was
	// saved under: "<eventID>_<unix timestamp>_<sanitised original>".
	StoredName string `json:"filename"`

	// OriginalName is the client-supplied file name, kept verbatim
	// for display.
	OriginalName string `json:"original_name"`

	// URL is the retrieval path the HTTP layer serves the file from.
	URL string `json:"url"`
}

// AttachmentMap is the full per-user attachment overlay: an ordered
// list of descriptors per event identifier.
type AttachmentMap map[string][]Attachment
