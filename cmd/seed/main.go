package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/alumni-network/config"
	"github.com/oksasatya/alumni-network/pkg/helpers"
)

type member struct {
	email    string
	name     string
	degree   string
	branch   string
	year     int
	company  string
	role     string
	location string
}

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

	members := []member{
		{"demo@example.com", "Demo Member", "B.Tech", "Computer Science", 2019, "Acme Corp", "Software Engineer", "Bangalore"},
		{"priya@example.com", "Priya Sharma", "M.Tech", "Electronics", 2017, "Signalworks", "Hardware Lead", "Pune"},
		{"rahul@example.com", "Rahul Verma", "B.Tech", "Mechanical", 2020, "Torque Labs", "Design Engineer", "Chennai"},
		{"ana@example.com", "Ana Costa", "MBA", "Management", 2018, "Northwind", "Product Manager", "Remote"},
	}

	for _, m := range members {
		var id string
		err = db.QueryRow(`
			INSERT INTO users (email, password_hash, provider)
			VALUES ($1, $2, 'local')
			ON CONFLICT (email) DO UPDATE SET updated_at = now()
			RETURNING id
		`, m.email, hash).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", m.email, err)
		}

		_, err = db.Exec(`
			INSERT INTO profiles (user_id, name, phone, degree, branch, graduation_year,
			                      company, role, location, link, avatar_url,
			                      onboarded, moderation_status)
			VALUES ($1, $2, '', $3, $4, $5, $6, $7, $8, '', '', TRUE, 'approved')
			ON CONFLICT (user_id) DO UPDATE SET
				name = EXCLUDED.name,
				moderation_status = 'approved',
				onboarded = TRUE,
				updated_at = now()
		`, id, m.name, m.degree, m.branch, m.year, m.company, m.role, m.location)
		if err != nil {
			log.Fatalf("failed to seed profile for %s: %v", m.email, err)
		}
		fmt.Printf("seeded member: id=%s email=%s password=%s\n", id, m.email, password)
	}
}
