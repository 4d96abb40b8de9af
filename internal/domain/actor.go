package domain

import "github.com/google/uuid"

// Actor is a minimal display record for a user referenced by a relationship
// or a notification. It is derived from directory data per request and never
// persisted or cached server-side.
type Actor struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email,omitempty"`
	Username string    `json:"username"`
}
