package models

import "time"

// TournamentFormat matches the format ENUM in the DB.
type TournamentFormat string

const (
	FormatGroupsKnockout TournamentFormat = "groups_knockout"
	FormatKnockout       TournamentFormat = "knockout"
)

func (f TournamentFormat) Valid() bool {
	return f == FormatGroupsKnockout || f == FormatKnockout
}

// Default points awarded per result when a tournament does not override them.
const (
	DefaultPointsWin  = 3
	DefaultPointsDraw = 1
	DefaultPointsLoss = 0
)

// Tournament is the read-only root entity for the scheduling engine:
// its format selects the generation pipeline and its points tuple feeds
// the standings calculator.
type Tournament struct {
	ID         int              `json:"id" db:"id"`
	OwnerID    int              `json:"owner_id" db:"owner_id"`
	Name       string           `json:"name" db:"name"`
	Sport      string           `json:"sport" db:"sport"`
	Location   *string          `json:"location,omitempty" db:"location"`
	Format     TournamentFormat `json:"format" db:"format"`
	PointsWin  int              `json:"points_win" db:"points_win"`
	PointsDraw int              `json:"points_draw" db:"points_draw"`
	PointsLoss int              `json:"points_loss" db:"points_loss"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	// Optional linked data, populated by services, not mapped directly.
	Teams   []Team  `json:"teams,omitempty" db:"-"`
	Groups  []Group `json:"groups,omitempty" db:"-"`
	Matches []Match `json:"matches,omitempty" db:"-"`
}
