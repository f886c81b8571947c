package models

import "time"

type ScheduledPost struct {
	ID          int64     `db:"id" json:"id"`
	MediaRef    string    `db:"media_ref" json:"media_ref"`
	MediaKind   string    `db:"media_kind" json:"media_kind"`
	MimeType    string    `db:"mime_type" json:"mime_type"`
	Caption     string    `db:"caption" json:"caption"`
	Platforms   []string  `db:"platforms" json:"platforms"`
	ScheduledAt time.Time `db:"scheduled_at" json:"scheduled_at"`
	Status      string    `db:"status" json:"status"` // pending, posted, failed
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusPending = "pending"
	PostStatusPosted  = "posted"
	PostStatusFailed  = "failed"
)

const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
	MediaKindOther = "other"
)
