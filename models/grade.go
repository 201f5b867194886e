package models

// Grade is a single mark fetched from the remote portal. The value
// fields are opaque to this service: they are stored and served back
// verbatim, and fully replaced on every sync.
type Grade struct {
	// ID is the grade identifier assigned by the portal.
	ID string `json:"id"`

	// Subject is the school subject the grade belongs to.
	Subject string `json:"materia"`

	// Value is the decimal mark, zero for non-numeric annotations.
	Value float64 `json:"voto"`

	// DisplayValue is the mark as the portal renders it (e.g. "7+").
	DisplayValue string `json:"voto_str,omitempty"`

	// Date is the day the grade was given, "2006-01-02".
	Date string `json:"data"`

	// Period is the portal's academic period label for the grade.
	Period string `json:"periodo,omitempty"`

	// Comment is the teacher's optional note.
	Comment string `json:"note,omitempty"`
}
