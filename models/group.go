package models

import "time"

// Group is a round-robin pool. Groups are created in a single batch per
// partitioning run and replaced wholesale on regeneration, never edited
// one by one.
type Group struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
