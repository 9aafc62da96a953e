package models

import "time"

// Team belongs to exactly one tournament. GroupID stays nil until the
// partitioner assigns the team to a group.
type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	GroupID      *int      `json:"group_id,omitempty" db:"group_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
