package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-agenda/config"
	"github.com/oksasatya/go-agenda/internal/domain/rules"
	"github.com/oksasatya/go-agenda/pkg/helpers"
)

// seed provisions (or re-keys) one institutional user account.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	email := getenv("SEED_EMAIL", "admin@fatec.sp.gov.br")
	password := getenv("SEED_PASSWORD", "password123")
	username := getenv("SEED_USERNAME", "admin")

	if err := rules.ValidateInstitutionalEmail(email); err != nil {
		log.Fatalf("SEED_EMAIL %q: %v", email, err)
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer func() { _ = conn.Close(ctx) }()

	var id string
	err = conn.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE
		SET username = EXCLUDED.username, password_hash = EXCLUDED.password_hash, updated_at = now()
		RETURNING id
	`, username, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s\n", id, email, username)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
