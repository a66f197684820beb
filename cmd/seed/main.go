package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/lib/pq"

	"github.com/oksasatya/habit-tracker-api/config"
	"github.com/oksasatya/habit-tracker-api/pkg/helpers"
)

// Seeds a demo account with a couple of habits for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID int64
	err = db.QueryRow(`
		INSERT INTO users (email, hashed_password, is_active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (email) DO UPDATE SET hashed_password = EXCLUDED.hashed_password
		RETURNING id
	`, email, hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s password=%s\n", userID, email, password)

	habits := []struct {
		name     string
		category string
		dates    []string
	}{
		{"Morning run", "Fitness", []string{"2024-01-01", "2024-01-02"}},
		{"Read 20 pages", "Learning", nil},
		{"Drink water", "General", []string{"2024-01-01"}},
	}
	for _, h := range habits {
		dates := h.dates
		if dates == nil {
			dates = []string{}
		}
		var habitID int64
		if err := db.QueryRow(`
			INSERT INTO habits (owner_id, name, category, completed_dates)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, userID, h.name, h.category, pq.Array(dates)).Scan(&habitID); err != nil {
			log.Fatalf("failed to seed habit %q: %v", h.name, err)
		}
		fmt.Printf("seeded habit: id=%d name=%q category=%s\n", habitID, h.name, h.category)
	}
}
