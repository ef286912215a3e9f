package model

import "time"

// Notification is a server-generated message for the authenticated user.
// New notifications are announced over the live channel; the list itself is
// always re-fetched from the server rather than appended to locally.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// UserProfile is the authenticated user, one per session.
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
