package brackets

import (
	"testing"

	"github.com/jprn/FootTour/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func finishedMatch(home, away, hs, as int) models.Match {
	gid := 1
	return models.Match{
		GroupID:    &gid,
		HomeTeamID: home,
		AwayTeamID: away,
		HomeScore:  intPtr(hs),
		AwayScore:  intPtr(as),
		Status:     models.MatchStatusFinished,
	}
}

func fourTeams() []models.Team {
	return []models.Team{
		{ID: 1, Name: "Arsenal"},
		{ID: 2, Name: "Brentford"},
		{ID: 3, Name: "Chelsea"},
		{ID: 4, Name: "Dynamo"},
	}
}

func TestComputeStandingsFullGroup(t *testing.T) {
	teams := fourTeams()
	matches := []models.Match{
		finishedMatch(1, 2, 3, 1),
		finishedMatch(1, 3, 2, 2),
		finishedMatch(1, 4, 0, 0),
		finishedMatch(2, 3, 1, 1),
		finishedMatch(2, 4, 4, 0),
		finishedMatch(3, 4, 2, 1),
	}

	rows := ComputeStandings(teams, matches, DefaultScoringRule())
	require.Len(t, rows, 4)

	// Arsenal and Chelsea both sit on 5 points; Arsenal's goal
	// difference breaks the tie.
	assert.Equal(t, []int{1, 3, 2, 4}, rowTeamIDs(rows))
	assert.Equal(t, []int{1, 2, 3, 4}, rowRanks(rows))

	arsenal := rows[0]
	assert.Equal(t, 3, arsenal.Played)
	assert.Equal(t, 1, arsenal.Wins)
	assert.Equal(t, 2, arsenal.Draws)
	assert.Equal(t, 0, arsenal.Losses)
	assert.Equal(t, 5, arsenal.GoalsFor)
	assert.Equal(t, 3, arsenal.GoalsAgainst)
	assert.Equal(t, 2, arsenal.GoalDifference)
	assert.Equal(t, 5, arsenal.Points)

	dynamo := rows[3]
	assert.Equal(t, 1, dynamo.Points)
	assert.Equal(t, -5, dynamo.GoalDifference)

	totalPoints := 0
	for _, r := range rows {
		totalPoints += r.Points
		assert.Equal(t, r.GoalsFor-r.GoalsAgainst, r.GoalDifference)
	}
	// 3 decisive matches at 3 points, 3 draws at 2 points.
	assert.Equal(t, 15, totalPoints)
}

func TestComputeStandingsCountsLiveMatches(t *testing.T) {
	teams := fourTeams()

	live := finishedMatch(1, 2, 2, 0)
	live.Status = models.MatchStatusLive

	rows := ComputeStandings(teams, []models.Match{live}, DefaultScoringRule())
	require.Len(t, rows, 4)
	assert.Equal(t, 1, rows[0].TeamID)
	assert.Equal(t, 3, rows[0].Points)
	assert.Equal(t, 1, rows[0].Played)
}

func TestComputeStandingsSkipsNonCountable(t *testing.T) {
	teams := fourTeams()

	scheduled := finishedMatch(1, 2, 2, 0)
	scheduled.Status = models.MatchStatusScheduled

	partial := finishedMatch(3, 4, 1, 0)
	partial.AwayScore = nil

	rows := ComputeStandings(teams, []models.Match{scheduled, partial}, DefaultScoringRule())
	for _, r := range rows {
		assert.Zero(t, r.Played, "team %d should have no countable match", r.TeamID)
		assert.Zero(t, r.Points)
	}
}

func TestComputeStandingsSkipsUnknownTeams(t *testing.T) {
	teams := fourTeams()[:2]
	matches := []models.Match{
		finishedMatch(1, 2, 1, 0),
		finishedMatch(1, 99, 0, 5), // 99 left the group; stale match
	}

	rows := ComputeStandings(teams, matches, DefaultScoringRule())
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].TeamID)
	assert.Equal(t, 1, rows[0].Played)
	assert.Equal(t, 3, rows[0].Points)
}

func TestComputeStandingsNameTiebreak(t *testing.T) {
	teams := []models.Team{
		{ID: 1, Name: "Zenith"},
		{ID: 2, Name: "Ajax"},
	}
	rows := ComputeStandings(teams, []models.Match{finishedMatch(1, 2, 1, 1)}, DefaultScoringRule())
	require.Len(t, rows, 2)
	// Identical records; alphabetical order decides.
	assert.Equal(t, "Ajax", rows[0].TeamName)
	assert.Equal(t, "Zenith", rows[1].TeamName)
}

func TestComputeStandingsCustomRule(t *testing.T) {
	teams := fourTeams()[:2]
	rule := ScoringRule{Win: 2, Draw: 1, Loss: 0}

	rows := ComputeStandings(teams, []models.Match{finishedMatch(1, 2, 1, 0)}, rule)
	assert.Equal(t, 2, rows[0].Points)
	assert.Equal(t, 0, rows[1].Points)
}

func TestComputeStandingsEmptyInputs(t *testing.T) {
	rows := ComputeStandings(nil, nil, DefaultScoringRule())
	assert.Empty(t, rows)

	rows = ComputeStandings(fourTeams(), nil, DefaultScoringRule())
	require.Len(t, rows, 4)
	for i, r := range rows {
		assert.Equal(t, i+1, r.Rank)
		assert.Zero(t, r.Played)
	}
}

func TestScoringRuleFor(t *testing.T) {
	assert.Equal(t, DefaultScoringRule(), ScoringRuleFor(nil))

	custom := &models.Tournament{PointsWin: 2, PointsDraw: 1, PointsLoss: -1}
	assert.Equal(t, ScoringRule{Win: 2, Draw: 1, Loss: -1}, ScoringRuleFor(custom))
}

func rowTeamIDs(rows []models.StandingRow) []int {
	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.TeamID
	}
	return ids
}

func rowRanks(rows []models.StandingRow) []int {
	ranks := make([]int, len(rows))
	for i, r := range rows {
		ranks[i] = r.Rank
	}
	return ranks
}
