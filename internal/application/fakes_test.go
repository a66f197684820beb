package application

import (
	"sync"
	"time"

	"github.com/oksasatya/habit-tracker-api/internal/domain/entity"
	repo "github.com/oksasatya/habit-tracker-api/internal/domain/repository"
)

// In-memory repositories mirroring the Postgres behavior closely enough for
// service tests: assigned ids, creation order, owner scoping, duplicate email.

type memUserRepo struct {
	mu      sync.Mutex
	nextID  int64
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

var _ repo.UserRepository = (*memUserRepo)(nil)

type memHabitRepo struct {
	mu     sync.Mutex
	nextID int64
	habits []*entity.Habit
}

func newMemHabitRepo() *memHabitRepo { return &memHabitRepo{} }

func copyHabit(h *entity.Habit) *entity.Habit {
	cp := *h
	cp.CompletedDates = append([]string(nil), h.CompletedDates...)
	if cp.CompletedDates == nil {
		cp.CompletedDates = []string{}
	}
	return &cp
}

func (r *memHabitRepo) ListByOwner(ownerID int64, skip, limit int) ([]*entity.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Habit, 0)
	seen := 0
	for _, h := range r.habits {
		if h.OwnerID != ownerID {
			continue
		}
		if seen < skip {
			seen++
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, copyHabit(h))
	}
	return out, nil
}

func (r *memHabitRepo) Create(h *entity.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	h.ID = r.nextID
	h.CreatedAt = time.Now()
	h.CompletedDates = []string{}
	r.habits = append(r.habits, copyHabit(h))
	return nil
}

func (r *memHabitRepo) GetOwned(id, ownerID int64) (*entity.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.habits {
		if h.ID == id && h.OwnerID == ownerID {
			return copyHabit(h), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memHabitRepo) UpdateDates(h *entity.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.habits {
		if stored.ID == h.ID && stored.OwnerID == h.OwnerID {
			stored.CompletedDates = append([]string(nil), h.CompletedDates...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r *memHabitRepo) Delete(id, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.habits {
		if h.ID == id && h.OwnerID == ownerID {
			r.habits = append(r.habits[:i], r.habits[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

var _ repo.HabitRepository = (*memHabitRepo)(nil)
