package models

import "time"

type Session struct {
	ID        string    `db:"id"`
	IssuedAt  time.Time `db:"issued_at"`
	ExpiresAt time.Time `db:"expires_at"`
}
