package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusFinished  MatchStatus = "finished"
)

func (s MatchStatus) Valid() bool {
	return s == MatchStatusScheduled || s == MatchStatusLive || s == MatchStatusFinished
}

// Match is a single fixture. A non-nil GroupID marks a round-robin pool
// match; a nil GroupID marks a knockout match. Scores are either both
// present or both absent.
type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	GroupID      *int        `json:"group_id,omitempty" db:"group_id"`
	Round        string      `json:"round" db:"round"`
	HomeTeamID   int         `json:"home_team_id" db:"home_team_id"`
	AwayTeamID   int         `json:"away_team_id" db:"away_team_id"`
	HomeScore    *int        `json:"home_score,omitempty" db:"home_score"`
	AwayScore    *int        `json:"away_score,omitempty" db:"away_score"`
	Status       MatchStatus `json:"status" db:"status"`
	StartTime    *time.Time  `json:"start_time,omitempty" db:"start_time"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`

	// Optional linked data, populated by services.
	HomeTeam *Team `json:"home_team,omitempty" db:"-"`
	AwayTeam *Team `json:"away_team,omitempty" db:"-"`
}

// IsKnockout reports whether the match belongs to the knockout stage.
func (m *Match) IsKnockout() bool {
	return m.GroupID == nil
}

// HasScores reports whether both scores have been entered.
func (m *Match) HasScores() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}
