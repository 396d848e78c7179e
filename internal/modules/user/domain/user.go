package domain

import "github.com/google/uuid"

// User is referenced, never owned, by lunch sessions. The name doubles as a
// human-friendly handle and is unique across the system.
type User struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Email string    `json:"email" db:"email"`
}
