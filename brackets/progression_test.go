package brackets

import (
	"testing"

	"github.com/jprn/FootTour/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func knockoutMatch(round string, home, away int, hs, as int, status models.MatchStatus) models.Match {
	m := models.Match{
		TournamentID: 10,
		Round:        round,
		HomeTeamID:   home,
		AwayTeamID:   away,
		Status:       status,
	}
	if status != models.MatchStatusScheduled {
		m.HomeScore = intPtr(hs)
		m.AwayScore = intPtr(as)
	}
	return m
}

func finishedKO(round string, home, away, hs, as int) models.Match {
	return knockoutMatch(round, home, away, hs, as, models.MatchStatusFinished)
}

func TestNextStageOffersThirdPlaceBeforeFinal(t *testing.T) {
	// Semifinals done: winners 1 and 3, losers 2 and 4.
	knockout := []models.Match{
		finishedKO(RoundSemifinal, 1, 2, 2, 0),
		finishedKO(RoundSemifinal, 3, 4, 1, 0),
	}

	proposal, err := NextStage(10, knockout, makeTeams(4))
	require.NoError(t, err)
	require.NotNil(t, proposal)

	assert.Equal(t, StageGenerateThirdPlace, proposal.Action)
	assert.Equal(t, RoundThirdPlace, proposal.RoundLabel)
	require.Len(t, proposal.Pairings, 1)
	assert.Equal(t, 2, proposal.Pairings[0].HomeTeamID)
	assert.Equal(t, 4, proposal.Pairings[0].AwayTeamID)
}

func TestNextStageOffersFinalAfterThirdPlace(t *testing.T) {
	knockout := []models.Match{
		finishedKO(RoundSemifinal, 1, 2, 2, 0),
		finishedKO(RoundSemifinal, 3, 4, 1, 0),
		finishedKO(RoundThirdPlace, 2, 4, 3, 1),
	}

	proposal, err := NextStage(10, knockout, makeTeams(4))
	require.NoError(t, err)
	require.NotNil(t, proposal)

	assert.Equal(t, StageGenerateFinal, proposal.Action)
	assert.Equal(t, RoundFinal, proposal.RoundLabel)
	require.Len(t, proposal.Pairings, 1)
	assert.Equal(t, 1, proposal.Pairings[0].HomeTeamID)
	assert.Equal(t, 3, proposal.Pairings[0].AwayTeamID)
}

func TestNextStageWaitsForThirdPlaceResult(t *testing.T) {
	knockout := []models.Match{
		finishedKO(RoundSemifinal, 1, 2, 2, 0),
		finishedKO(RoundSemifinal, 3, 4, 1, 0),
		knockoutMatch(RoundThirdPlace, 2, 4, 0, 0, models.MatchStatusScheduled),
	}

	proposal, err := NextStage(10, knockout, makeTeams(4))
	require.NoError(t, err)
	assert.Nil(t, proposal)
}

func TestNextStageWaitsForIncompleteRound(t *testing.T) {
	knockout := []models.Match{
		finishedKO(RoundSemifinal, 1, 2, 2, 0),
		knockoutMatch(RoundSemifinal, 3, 4, 0, 0, models.MatchStatusLive),
	}

	proposal, err := NextStage(10, knockout, makeTeams(4))
	require.NoError(t, err)
	assert.Nil(t, proposal)
}

func TestNextStageAdvancesLargerRound(t *testing.T) {
	knockout := []models.Match{
		finishedKO(RoundQuarterfinal, 1, 2, 2, 0),
		finishedKO(RoundQuarterfinal, 3, 4, 1, 0),
		finishedKO(RoundQuarterfinal, 5, 6, 4, 2),
		finishedKO(RoundQuarterfinal, 7, 8, 0, 3),
	}

	proposal, err := NextStage(10, knockout, makeTeams(8))
	require.NoError(t, err)
	require.NotNil(t, proposal)

	assert.Equal(t, StageGenerateNextRound, proposal.Action)
	assert.Equal(t, RoundSemifinal, proposal.RoundLabel)
	require.Len(t, proposal.Pairings, 2)
	assert.Equal(t, 1, proposal.Pairings[0].HomeTeamID)
	assert.Equal(t, 3, proposal.Pairings[0].AwayTeamID)
	assert.Equal(t, 5, proposal.Pairings[1].HomeTeamID)
	assert.Equal(t, 8, proposal.Pairings[1].AwayTeamID)
}

func TestNextStageAfterFinalExists(t *testing.T) {
	knockout := []models.Match{
		finishedKO(RoundSemifinal, 1, 2, 2, 0),
		finishedKO(RoundSemifinal, 3, 4, 1, 0),
		finishedKO(RoundThirdPlace, 2, 4, 3, 1),
		knockoutMatch(RoundFinal, 1, 3, 0, 0, models.MatchStatusScheduled),
	}

	proposal, err := NextStage(10, knockout, makeTeams(4))
	require.NoError(t, err)
	assert.Nil(t, proposal)
}

func TestNextStageDrawStallsProgression(t *testing.T) {
	knockout := []models.Match{
		finishedKO(RoundSemifinal, 1, 2, 2, 2),
		finishedKO(RoundSemifinal, 3, 4, 1, 0),
	}

	_, err := NextStage(10, knockout, makeTeams(4))
	assert.ErrorIs(t, err, ErrKnockoutDraw)
}

func TestNextStageNoKnockoutMatches(t *testing.T) {
	proposal, err := NextStage(10, nil, makeTeams(4))
	require.NoError(t, err)
	assert.Nil(t, proposal)
}

func TestFinalRanking(t *testing.T) {
	knockout := []models.Match{
		finishedKO(RoundSemifinal, 1, 2, 2, 0),
		finishedKO(RoundSemifinal, 3, 4, 1, 0),
		finishedKO(RoundThirdPlace, 2, 4, 3, 1),
		finishedKO(RoundFinal, 1, 3, 2, 1),
	}

	ranking, err := FinalRanking(knockout)
	require.NoError(t, err)
	require.Len(t, ranking, 4)

	assert.Equal(t, []FinalRank{
		{Rank: 1, TeamID: 1},
		{Rank: 2, TeamID: 3},
		{Rank: 3, TeamID: 2},
		{Rank: 4, TeamID: 4},
	}, ranking)
}

func TestFinalRankingWithoutThirdPlace(t *testing.T) {
	knockout := []models.Match{
		finishedKO(RoundFinal, 1, 3, 0, 2),
	}

	ranking, err := FinalRanking(knockout)
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	assert.Equal(t, 3, ranking[0].TeamID)
	assert.Equal(t, 1, ranking[1].TeamID)
}

func TestFinalRankingBeforeFinalSettled(t *testing.T) {
	knockout := []models.Match{
		finishedKO(RoundSemifinal, 1, 2, 2, 0),
		finishedKO(RoundSemifinal, 3, 4, 1, 0),
		knockoutMatch(RoundFinal, 1, 3, 0, 0, models.MatchStatusLive),
	}

	ranking, err := FinalRanking(knockout)
	require.NoError(t, err)
	assert.Nil(t, ranking)
}

func TestFinalRankingDrawnFinal(t *testing.T) {
	knockout := []models.Match{
		finishedKO(RoundFinal, 1, 3, 1, 1),
	}

	_, err := FinalRanking(knockout)
	assert.ErrorIs(t, err, ErrKnockoutDraw)
}
