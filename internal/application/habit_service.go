package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/habit-tracker-api/internal/domain/entity"
	repo "github.com/oksasatya/habit-tracker-api/internal/domain/repository"
)

var ErrHabitNotFound = errors.New("habit not found")

const (
	DefaultCategory = "General"
	DefaultLimit    = 100
)

// HabitService performs owner-scoped habit operations. Every method takes
// the caller's user id; a habit owned by someone else behaves exactly like
// a habit that does not exist.
type HabitService struct {
	Repo   repo.HabitRepository
	Logger *logrus.Logger
}

func NewHabitService(r repo.HabitRepository, logger *logrus.Logger) *HabitService {
	return &HabitService{Repo: r, Logger: logger}
}

// List returns the caller's habits in creation order.
func (s *HabitService) List(ctx context.Context, ownerID int64, skip, limit int) ([]*entity.Habit, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = DefaultLimit
	}
	return s.Repo.ListByOwner(ownerID, skip, limit)
}

// Create persists a new habit with no completed dates. An empty category
// falls back to DefaultCategory.
func (s *HabitService) Create(ctx context.Context, ownerID int64, name, category string) (*entity.Habit, error) {
	if category == "" {
		category = DefaultCategory
	}
	h := &entity.Habit{OwnerID: ownerID, Name: name, Category: category}
	if err := s.Repo.Create(h); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("owner_id", ownerID).Error("create habit failed")
		}
		return nil, err
	}
	if h.CompletedDates == nil {
		h.CompletedDates = []string{}
	}
	return h, nil
}

// ToggleDate flips membership of date in the habit's completed dates:
// the first occurrence is removed if present, otherwise the date is
// appended. Applying it twice with the same date restores the original set.
func (s *HabitService) ToggleDate(ctx context.Context, habitID, ownerID int64, date string) (*entity.Habit, error) {
	h, err := s.Repo.GetOwned(habitID, ownerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("habit_id", habitID).Error("load habit failed")
		}
		return nil, err
	}
	if h == nil {
		return nil, ErrHabitNotFound
	}

	found := false
	for i, d := range h.CompletedDates {
		if d == date {
			h.CompletedDates = append(h.CompletedDates[:i], h.CompletedDates[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		h.CompletedDates = append(h.CompletedDates, date)
	}

	if err := s.Repo.UpdateDates(h); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, err
	}
	if h.CompletedDates == nil {
		h.CompletedDates = []string{}
	}
	return h, nil
}

// Delete removes the habit permanently.
func (s *HabitService) Delete(ctx context.Context, habitID, ownerID int64) error {
	if err := s.Repo.Delete(habitID, ownerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrHabitNotFound
		}
		return err
	}
	return nil
}
