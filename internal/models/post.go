package models

import "time"

// Post is a single anonymous board entry.
// The password hash authorizes edits and is never serialized to clients.
type Post struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	IsDeleted    bool      `json:"-"` // soft-delete marker; deleted rows stay in the table
}
