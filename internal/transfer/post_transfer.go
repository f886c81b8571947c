package transfer

type PostCreation struct {
	Caption       string
	ScheduledTime string
	Platforms     string // JSON array from the form, e.g. ["instagram","facebook"]
}

// PostUpdate carries a partial edit. Pointer fields distinguish a field
// that was omitted from one that was set to its zero value: a nil Caption
// leaves the caption alone, an empty *Caption clears it.
type PostUpdate struct {
	Caption       *string   `json:"caption"`
	ScheduledTime *string   `json:"scheduled_at"`
	Platforms     *[]string `json:"platforms"`
}

type StoredMedia struct {
	Ref      string
	Kind     string
	MimeType string
}
