package brackets

import (
	"testing"

	"github.com/jprn/FootTour/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposeInitialKnockout(t *testing.T) {
	teams := makeTeams(6)

	proposal, err := ProposeInitialKnockout(10, teams)
	require.NoError(t, err)

	// Bracket covers the largest power of two (4); the two teams past
	// the cutoff are surfaced as byes, never dropped silently.
	assert.Equal(t, RoundFirstRound, proposal.RoundLabel)
	require.Len(t, proposal.Pairings, 2)
	assert.Equal(t, 1, proposal.Pairings[0].HomeTeamID)
	assert.Equal(t, 2, proposal.Pairings[0].AwayTeamID)
	assert.Equal(t, 3, proposal.Pairings[1].HomeTeamID)
	assert.Equal(t, 4, proposal.Pairings[1].AwayTeamID)
	require.Len(t, proposal.Byes, 2)
	assert.Equal(t, 5, proposal.Byes[0].ID)
	assert.Equal(t, 6, proposal.Byes[1].ID)
}

func TestProposeInitialKnockoutExactPowerOfTwo(t *testing.T) {
	proposal, err := ProposeInitialKnockout(10, makeTeams(8))
	require.NoError(t, err)
	assert.Len(t, proposal.Pairings, 4)
	assert.Empty(t, proposal.Byes)

	proposal, err = ProposeInitialKnockout(10, makeTeams(2))
	require.NoError(t, err)
	assert.Len(t, proposal.Pairings, 1)
	assert.Empty(t, proposal.Byes)
}

func TestProposeInitialKnockoutTooFewTeams(t *testing.T) {
	_, err := ProposeInitialKnockout(10, makeTeams(1))
	assert.ErrorIs(t, err, ErrNotEnoughTeams)

	_, err = ProposeInitialKnockout(10, nil)
	assert.ErrorIs(t, err, ErrNotEnoughTeams)
}

func TestKnockoutProposalMatches(t *testing.T) {
	proposal, err := ProposeInitialKnockout(10, makeTeams(4))
	require.NoError(t, err)

	matches := proposal.Matches()
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.Equal(t, 10, m.TournamentID)
		assert.Nil(t, m.GroupID, "knockout fixtures carry no group")
		assert.Equal(t, RoundFirstRound, m.Round)
		assert.Equal(t, models.MatchStatusScheduled, m.Status)
	}
}

func tableOf(startID int, names ...string) []models.StandingRow {
	rows := make([]models.StandingRow, len(names))
	for i, name := range names {
		rows[i] = models.StandingRow{TeamID: startID + i, TeamName: name, Rank: i + 1}
	}
	return rows
}

func TestQualifierOptions(t *testing.T) {
	tests := []struct {
		name     string
		tables   [][]models.StandingRow
		expected []int
	}{
		{"no tables", nil, nil},
		{"groups of four", [][]models.StandingRow{tableOf(1, "a", "b", "c", "d"), tableOf(5, "e", "f", "g", "h")}, []int{2, 4}},
		{"smallest group of three", [][]models.StandingRow{tableOf(1, "a", "b", "c", "d"), tableOf(5, "e", "f", "g")}, []int{2}},
		{"smallest group of two", [][]models.StandingRow{tableOf(1, "a", "b"), tableOf(3, "c", "d")}, []int{2}},
		{"single-team group", [][]models.StandingRow{tableOf(1, "a")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QualifierOptions(tt.tables))
		})
	}
}

func TestProposeKnockoutFromStandings(t *testing.T) {
	tables := [][]models.StandingRow{
		tableOf(1, "A1", "A2", "A3", "A4"),
		tableOf(5, "B1", "B2", "B3", "B4"),
	}

	proposal, err := ProposeKnockoutFromStandings(10, tables, 2)
	require.NoError(t, err)

	// Seeds interleave as [A1, B1, A2, B2]; seed i meets seed N-1-i, so
	// group winners avoid each other and their own runners-up.
	assert.Equal(t, RoundSemifinal, proposal.RoundLabel)
	require.Len(t, proposal.Pairings, 2)

	first := proposal.Pairings[0]
	assert.Equal(t, "A1", first.HomeName)
	assert.Equal(t, "B2", first.AwayName)
	assert.Equal(t, 1, first.HomeRank)
	assert.Equal(t, 2, first.AwayRank)

	second := proposal.Pairings[1]
	assert.Equal(t, "B1", second.HomeName)
	assert.Equal(t, "A2", second.AwayName)
}

func TestProposeKnockoutFromStandingsFourQualifiers(t *testing.T) {
	tables := [][]models.StandingRow{
		tableOf(1, "A1", "A2", "A3", "A4"),
		tableOf(5, "B1", "B2", "B3", "B4"),
	}

	proposal, err := ProposeKnockoutFromStandings(10, tables, 4)
	require.NoError(t, err)

	assert.Equal(t, RoundQuarterfinal, proposal.RoundLabel)
	require.Len(t, proposal.Pairings, 4)
	// Top seed draws the weakest qualifier.
	assert.Equal(t, "A1", proposal.Pairings[0].HomeName)
	assert.Equal(t, "B4", proposal.Pairings[0].AwayName)
}

func TestProposeKnockoutFromStandingsInvalidQualifiers(t *testing.T) {
	tables := [][]models.StandingRow{
		tableOf(1, "A1", "A2", "A3"),
		tableOf(4, "B1", "B2", "B3"),
	}

	_, err := ProposeKnockoutFromStandings(10, tables, 4)
	assert.ErrorIs(t, err, ErrInvalidQualifierCount)

	_, err = ProposeKnockoutFromStandings(10, tables, 3)
	assert.ErrorIs(t, err, ErrInvalidQualifierCount)

	_, err = ProposeKnockoutFromStandings(10, nil, 2)
	assert.ErrorIs(t, err, ErrInvalidQualifierCount)
}

func TestComputeRoundLabel(t *testing.T) {
	tests := []struct {
		teamCount int
		expected  string
	}{
		{16, RoundOf16},
		{8, RoundQuarterfinal},
		{4, RoundSemifinal},
		{2, RoundFinal},
		{3, RoundFinalStage},
		{32, RoundOf16},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ComputeRoundLabel(tt.teamCount), "team count %d", tt.teamCount)
	}
}
