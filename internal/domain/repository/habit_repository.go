package repository

import "github.com/oksasatya/habit-tracker-api/internal/domain/entity"

// HabitRepository defines the interface for habit-related database operations.
// Every lookup is scoped by owner; there is no way to reach another user's
// habit through this interface.
type HabitRepository interface {
	ListByOwner(ownerID int64, skip, limit int) ([]*entity.Habit, error)
	Create(h *entity.Habit) error
	GetOwned(id, ownerID int64) (*entity.Habit, error)
	UpdateDates(h *entity.Habit) error
	Delete(id, ownerID int64) error
}
