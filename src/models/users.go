package models

import (
	"time"

	"github.com/google/uuid"
)

// User owns movements and holdings. Email is the login identity; there
// is no username.
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
