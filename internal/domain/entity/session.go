package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies the authenticated user for subsequent service calls.
// It is returned by login and passed explicitly by the caller; nothing in the
// core keeps a process-wide "current user".
type Session struct {
	UserID   uuid.UUID
	Username string
	IssuedAt time.Time
}
