package database

import "time"

// Chat represents the per-chat bot state. In private conversations the ID is
// the sender's Telegram user ID; in groups and channels it is the chat ID.
type Chat struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	Intro    string `db:"intro"`
	Provider string `db:"provider"`
	Voice    string `db:"voice"`
	History  string `db:"history"` // opaque transcript owned by the generation client
	IsActive bool   `db:"is_active"`
}

// PendingAction correlates a regenerate button's callback token with the
// provider and prompt that produced the original result. Rows are deleted on
// resolve and swept by the pending_cleanup task once older than the
// configured retention window.
type PendingAction struct {
	Token     string    `db:"token"`
	Provider  string    `db:"provider"`
	Prompt    string    `db:"prompt"`
	CreatedAt time.Time `db:"created_at"`
}
