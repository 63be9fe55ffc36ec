package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/dream-journal-api/config"
	"github.com/oksasatya/dream-journal-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@dreamjournal.local"
	password := "password123"
	name := "Demo Dreamer"
	hash, err := helpers.NewBcryptHasher(cfg.BcryptCost).Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name, updated_at = now()
		RETURNING id::text
	`, email, name, hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s name=%s password=%s\n", userID, email, name, password)

	var sessionID string
	err = db.QueryRow(`
		INSERT INTO sleep_sessions (user_id, date, current_status, dream_data)
		VALUES ($1, now() - interval '8 hours',
			'{"stage":"REM","stageDuration":22}',
			'{"isDreaming":true,"confidence":0.87,"dreamScore":7.5,"emotion":"wonder"}')
		RETURNING id::text
	`, userID).Scan(&sessionID)
	if err != nil {
		log.Fatalf("failed to seed sleep session: %v", err)
	}
	fmt.Printf("seeded sleep session: id=%s\n", sessionID)

	var storyID string
	err = db.QueryRow(`
		INSERT INTO stories (user_id, title, content, emotion, genre, duration, theme)
		VALUES ($1, 'The Floating Library', 'Shelves drifted like clouds and every book hummed a different tune.', 'wonder', 'fantasy', '5 min', 'discovery')
		RETURNING id::text
	`, userID).Scan(&storyID)
	if err != nil {
		log.Fatalf("failed to seed story: %v", err)
	}
	fmt.Printf("seeded story: id=%s\n", storyID)
}
