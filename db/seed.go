package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// SeedData populates the database with a few sample squads for development.
// It is a no-op when any squads already exist.
func SeedData(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM squads").Scan(&count); err != nil {
		return fmt.Errorf("error counting squads: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	squads := []struct {
		title, leader, date, time, location, discipline string
		capacity                                        int
		message, contactType, contactValue, pin         string
	}{
		{
			title: "Saturday clays", leader: "Ray Holt",
			date: "2026-09-05", time: "09:30",
			location: "Cedar Creek Gun Club", discipline: "Sporting Clays",
			capacity: 4, message: "Casual round, all levels welcome.",
			contactType: "Phone", contactValue: "555-201-3344", pin: "482913",
		},
		{
			title: "Trap league warm-up", leader: "Dana Brooks",
			date: "2026-09-12", time: "17:00",
			location: "Northside Trap Range", discipline: "Trap",
			capacity: 5, message: "",
			contactType: "Email", contactValue: "dana.brooks@example.com", pin: "719204",
		},
	}

	for _, s := range squads {
		var message sql.NullString
		if s.message != "" {
			message = sql.NullString{String: s.message, Valid: true}
		}
		_, err = tx.Exec(`
			INSERT INTO squads (id, title, leader_name, date, time, location,
			                    discipline, capacity, message, contact_type,
			                    contact_value, leader_pin)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, uuid.NewString(), s.title, s.leader, s.date, s.time, s.location,
			s.discipline, s.capacity, message, s.contactType, s.contactValue, s.pin)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error seeding squads: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}
