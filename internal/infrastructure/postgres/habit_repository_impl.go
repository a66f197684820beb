package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/habit-tracker-api/internal/domain/entity"
	"github.com/oksasatya/habit-tracker-api/internal/domain/repository"
)

type HabitRepository struct {
	pool *pgxpool.Pool
}

func NewHabitRepository(pool *pgxpool.Pool) *HabitRepository {
	return &HabitRepository{pool: pool}
}

func (r *HabitRepository) ListByOwner(ownerID int64, skip, limit int) ([]*entity.Habit, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, name, category, completed_dates, created_at
		FROM habits
		WHERE owner_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3
	`, ownerID, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := make([]*entity.Habit, 0)
	for rows.Next() {
		h := &entity.Habit{}
		if err := rows.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Category,
			&h.CompletedDates, &h.CreatedAt); err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (r *HabitRepository) Create(h *entity.Habit) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO habits (owner_id, name, category)
		VALUES ($1, $2, $3)
		RETURNING id, completed_dates, created_at
	`, h.OwnerID, h.Name, h.Category)

	return row.Scan(&h.ID, &h.CompletedDates, &h.CreatedAt)
}

func (r *HabitRepository) GetOwned(id, ownerID int64) (*entity.Habit, error) {
	ctx := context.Background()
	h := &entity.Habit{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, name, category, completed_dates, created_at
		FROM habits
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)

	if err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Category,
		&h.CompletedDates, &h.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return h, nil
}

func (r *HabitRepository) UpdateDates(h *entity.Habit) error {
	ctx := context.Background()

	// pgx maps []string to TEXT[]; a nil slice would encode as NULL
	dates := h.CompletedDates
	if dates == nil {
		dates = []string{}
	}

	res, err := r.pool.Exec(ctx, `
		UPDATE habits
		SET completed_dates = $1
		WHERE id = $2 AND owner_id = $3
	`, dates, h.ID, h.OwnerID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *HabitRepository) Delete(id, ownerID int64) error {
	ctx := context.Background()

	res, err := r.pool.Exec(ctx, `
		DELETE FROM habits
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.HabitRepository = (*HabitRepository)(nil)
