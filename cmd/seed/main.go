package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/Lucas-Nascimentto/projeto-fan/config"
	"github.com/Lucas-Nascimentto/projeto-fan/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	donorID := seedUser(db, "donor", "Ana Souza", "ana@example.com", "+5511999990001", hash)
	recipientID := seedUser(db, "recipient", "Bruno Lima", "bruno@example.com", "+5511999990002", hash)
	fmt.Printf("seeded users: donor=%s recipient=%s password=%s\n", donorID, recipientID, password)

	var donationID string
	err = db.QueryRow(`
		INSERT INTO doacoes (owner_id, title, description, category, location, city, state)
		VALUES ($1, 'Winter coat', 'Adult coat in good condition', 'clothing', 'Downtown pickup point', 'Porto Alegre', 'RS')
		RETURNING id
	`, donorID).Scan(&donationID)
	if err != nil {
		log.Fatalf("failed to seed donation: %v", err)
	}
	fmt.Printf("seeded donation: id=%s owner=%s\n", donationID, donorID)
}

func seedUser(db *sql.DB, role, name, email, phone, hash string) string {
	var id string
	err := db.QueryRow(`
		INSERT INTO users (cargo, name, email, phone, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, role, name, email, phone, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}
