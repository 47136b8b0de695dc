// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the account that owns journal entries.
// Only the credential hash may change after registration.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Username     string    // Unique login name.
	PasswordHash string    // Opaque digest produced by the PasswordHasher.
	CreatedAt    time.Time // Timestamp of when this user account was created (UTC).
}
