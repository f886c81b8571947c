package models

type PlatformAccount struct {
	Platform  string `db:"platform" json:"platform"`
	Connected bool   `db:"connected" json:"connected"`
	Label     string `db:"label" json:"label"`
}

// DefaultPlatforms is the closed set seeded at first startup so the
// registry is never empty.
var DefaultPlatforms = []string{"facebook", "instagram", "tiktok"}
