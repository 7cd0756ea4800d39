package model

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a UUID-based identifier for User
type UserID string

// NewUserID generates a new UUID v4 UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

func (id UserID) String() string {
	return string(id)
}

// User is a registered account. Username and Email are unique.
type User struct {
	ID           UserID
	Username     string
	Email        string
	PasswordHash string `masq:"secret"`
	CreatedAt    time.Time
}
