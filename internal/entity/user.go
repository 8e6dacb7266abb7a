package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account row in the users table.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
