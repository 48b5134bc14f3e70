package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"
)

// Bootstrap seeds the first ADMIN account so the API has a principal able
// to create further users. Safe to run repeatedly.
func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "postgres://localhost:5432/dealership?sslmode=disable"
	}

	ctx := context.Background()

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	email := envOr("ADMIN_EMAIL", "admin@dealership.local")
	password := envOr("ADMIN_PASSWORD", "Admin123!")

	id, created, err := createAdmin(ctx, db, email, password)
	if err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	if created {
		log.Printf("Created admin user %d (email: %s)", id, email)
	} else {
		log.Printf("Admin user already exists: %d (email: %s)", id, email)
	}
}

func createAdmin(ctx context.Context, db *sql.DB, email, password string) (int64, bool, error) {
	var existing int64
	err := db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE lower(email) = lower($1)", email,
	).Scan(&existing)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, false, fmt.Errorf("hash password: %w", err)
	}

	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO users (email, password, firstname, lastname, type, status, created_by, updated_by)
		VALUES ($1, $2, 'SYSTEM', 'ADMINISTRATOR', 'ADMIN', 'ACTIVE', 'bootstrap', 'bootstrap')
		RETURNING id
	`, email, string(hash)).Scan(&id)
	if err != nil {
		return 0, false, fmt.Errorf("insert admin: %w", err)
	}
	return id, true, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
