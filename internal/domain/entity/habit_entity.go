package entity

import (
	"time"
)

// Habit belongs to exactly one user for its whole lifetime.
// CompletedDates holds caller-supplied date strings in insertion order;
// membership is flipped in place by the toggle operation.
type Habit struct {
	ID             int64
	OwnerID        int64
	Name           string
	Category       string
	CompletedDates []string
	CreatedAt      time.Time
}
