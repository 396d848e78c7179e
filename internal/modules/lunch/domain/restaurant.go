package domain

import "github.com/google/uuid"

// Restaurant is a candidate proposed for a session. It is created when first
// proposed, owned by the session it was proposed for, and deleted together
// with the session when the session ends.
type Restaurant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	SessionID uuid.UUID `json:"session_id" db:"session_id"`
}
