package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds the bcrypt hash; the plaintext is never persisted.
type User struct {
	ID        int64
	Email     string
	Password  string
	IsActive  bool
	CreatedAt time.Time
}
