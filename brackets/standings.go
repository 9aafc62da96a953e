package brackets

import (
	"sort"

	"github.com/jprn/FootTour/models"
)

// ScoringRule holds the points awarded per match outcome.
type ScoringRule struct {
	Win  int
	Draw int
	Loss int
}

func DefaultScoringRule() ScoringRule {
	return ScoringRule{
		Win:  models.DefaultPointsWin,
		Draw: models.DefaultPointsDraw,
		Loss: models.DefaultPointsLoss,
	}
}

// ScoringRuleFor reads the points tuple off a tournament.
func ScoringRuleFor(t *models.Tournament) ScoringRule {
	if t == nil {
		return DefaultScoringRule()
	}
	return ScoringRule{Win: t.PointsWin, Draw: t.PointsDraw, Loss: t.PointsLoss}
}

// ComputeStandings builds the ranked table for one group from team and
// match snapshots. A match counts once it has both scores and is live or
// finished; live matches are counted as in-progress credit on purpose, so
// tables move while games are still being played. Matches referencing a
// team outside the input list are skipped rather than failing on stale
// group membership. Teams with no countable match still get a row with
// all-zero stats.
//
// Order is a total order: points desc, goal difference desc, goals for
// desc, then team name asc as the deterministic tiebreak. Ranks are the
// final sort positions 1..N.
func ComputeStandings(teams []models.Team, matches []models.Match, rule ScoringRule) []models.StandingRow {
	byTeam := make(map[int]*models.StandingRow, len(teams))
	rows := make([]*models.StandingRow, 0, len(teams))
	for _, t := range teams {
		row := &models.StandingRow{TeamID: t.ID, TeamName: t.Name}
		byTeam[t.ID] = row
		rows = append(rows, row)
	}

	for _, m := range matches {
		if !countable(m) {
			continue
		}
		home := byTeam[m.HomeTeamID]
		away := byTeam[m.AwayTeamID]
		if home == nil || away == nil {
			continue
		}
		hs, as := *m.HomeScore, *m.AwayScore

		home.Played++
		away.Played++
		home.GoalsFor += hs
		home.GoalsAgainst += as
		away.GoalsFor += as
		away.GoalsAgainst += hs
		home.GoalDifference = home.GoalsFor - home.GoalsAgainst
		away.GoalDifference = away.GoalsFor - away.GoalsAgainst

		switch {
		case hs > as:
			home.Wins++
			away.Losses++
			home.Points += rule.Win
			away.Points += rule.Loss
		case hs < as:
			away.Wins++
			home.Losses++
			away.Points += rule.Win
			home.Points += rule.Loss
		default:
			home.Draws++
			away.Draws++
			home.Points += rule.Draw
			away.Points += rule.Draw
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamName < b.TeamName
	})

	out := make([]models.StandingRow, len(rows))
	for i, r := range rows {
		r.Rank = i + 1
		out[i] = *r
	}
	return out
}

func countable(m models.Match) bool {
	if m.Status != models.MatchStatusLive && m.Status != models.MatchStatusFinished {
		return false
	}
	return m.HomeScore != nil && m.AwayScore != nil
}
