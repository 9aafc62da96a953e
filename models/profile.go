package models

import "time"

// Plan is the subscription tier stored on a profile. The free tier is
// limited to a single tournament.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// FreePlanTournamentLimit is the number of tournaments a free profile
// may own.
const FreePlanTournamentLimit = 1

type Profile struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Plan         Plan      `json:"plan" db:"plan"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
