package brackets

import "github.com/jprn/FootTour/models"

// StageAction identifies the single bracket step currently available.
// The engine never offers more than one: the third-place match always
// comes before the final, and the final only once the third-place match
// is settled.
type StageAction string

const (
	StageGenerateNextRound  StageAction = "generate_next_round"
	StageGenerateThirdPlace StageAction = "generate_third_place"
	StageGenerateFinal      StageAction = "generate_final"
)

// StageProposal is the preview of the next knockout round, to be
// confirmed and committed by the caller like any other proposal.
type StageProposal struct {
	Action StageAction `json:"action"`
	KnockoutProposal
}

// FinalRank is one line of the terminal knockout ranking.
type FinalRank struct {
	Rank   int `json:"rank"`
	TeamID int `json:"team_id"`
}

// NextStage inspects the knockout matches of a tournament (creation
// order) and derives the next applicable bracket step, if any:
//
//   - the latest non-consolation round must be fully finished with both
//     scores on every match, otherwise nothing is offered;
//   - a completed round of exactly 2 matches is the semifinal stage: the
//     third-place match (between the losers) is offered first, then,
//     once that match is finished, the final (between the winners);
//   - a completed earlier round advances its winners pairwise into the
//     next round, labeled by the number of teams entering it.
//
// A finished knockout match with equal scores has no winner and returns
// ErrKnockoutDraw: the operator has to correct the score, the engine
// does not guess.
func NextStage(tournamentID int, knockout []models.Match, teams []models.Team) (*StageProposal, error) {
	names := make(map[int]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	var (
		roundOrder []string
		byRound    = make(map[string][]models.Match)
	)
	for _, m := range knockout {
		if _, seen := byRound[m.Round]; !seen {
			roundOrder = append(roundOrder, m.Round)
		}
		byRound[m.Round] = append(byRound[m.Round], m)
	}

	hasFinal := byRound[RoundFinal] != nil
	thirdPlace := byRound[RoundThirdPlace]

	if hasFinal {
		// Terminal or awaiting the final's result; either way nothing
		// more to generate.
		return nil, nil
	}

	var current []models.Match
	for _, label := range roundOrder {
		if isFinalRound(label) || isThirdPlaceRound(label) {
			continue
		}
		current = byRound[label]
	}
	if len(current) == 0 || !roundComplete(current) {
		return nil, nil
	}

	winners, losers, err := roundResults(current)
	if err != nil {
		return nil, err
	}

	if len(current) == 2 {
		// Semifinal stage. Third place first, then the final.
		if thirdPlace == nil {
			return pairUp(tournamentID, StageGenerateThirdPlace, RoundThirdPlace, losers, names), nil
		}
		if !roundComplete(thirdPlace) {
			return nil, nil
		}
		if _, _, err := roundResults(thirdPlace); err != nil {
			return nil, err
		}
		return pairUp(tournamentID, StageGenerateFinal, RoundFinal, winners, names), nil
	}

	if len(winners) >= 2 {
		return pairUp(tournamentID, StageGenerateNextRound, ComputeRoundLabel(len(winners)), winners, names), nil
	}
	return nil, nil
}

// FinalRanking computes the terminal placing once the final is finished:
// 1 and 2 from the final, 3 and 4 from the third-place match when it is
// finished too. Before the final is settled it returns nil.
func FinalRanking(knockout []models.Match) ([]FinalRank, error) {
	var final, thirdPlace *models.Match
	for i := range knockout {
		m := &knockout[i]
		switch {
		case isFinalRound(m.Round):
			final = m
		case isThirdPlaceRound(m.Round):
			thirdPlace = m
		}
	}
	if final == nil || final.Status != models.MatchStatusFinished || !final.HasScores() {
		return nil, nil
	}

	winner, loser, err := matchResult(*final)
	if err != nil {
		return nil, err
	}
	ranking := []FinalRank{
		{Rank: 1, TeamID: winner},
		{Rank: 2, TeamID: loser},
	}

	if thirdPlace != nil && thirdPlace.Status == models.MatchStatusFinished && thirdPlace.HasScores() {
		winner, loser, err := matchResult(*thirdPlace)
		if err != nil {
			return nil, err
		}
		ranking = append(ranking,
			FinalRank{Rank: 3, TeamID: winner},
			FinalRank{Rank: 4, TeamID: loser},
		)
	}
	return ranking, nil
}

func roundComplete(matches []models.Match) bool {
	for _, m := range matches {
		if m.Status != models.MatchStatusFinished || !m.HasScores() {
			return false
		}
	}
	return true
}

func roundResults(matches []models.Match) (winners, losers []int, err error) {
	for _, m := range matches {
		w, l, err := matchResult(m)
		if err != nil {
			return nil, nil, err
		}
		winners = append(winners, w)
		losers = append(losers, l)
	}
	return winners, losers, nil
}

func matchResult(m models.Match) (winnerID, loserID int, err error) {
	hs, as := *m.HomeScore, *m.AwayScore
	switch {
	case hs > as:
		return m.HomeTeamID, m.AwayTeamID, nil
	case as > hs:
		return m.AwayTeamID, m.HomeTeamID, nil
	default:
		return 0, 0, ErrKnockoutDraw
	}
}

func pairUp(tournamentID int, action StageAction, label string, teamIDs []int, names map[int]string) *StageProposal {
	proposal := &StageProposal{
		Action: action,
		KnockoutProposal: KnockoutProposal{
			TournamentID: tournamentID,
			RoundLabel:   label,
		},
	}
	for i := 0; i+1 < len(teamIDs); i += 2 {
		proposal.Pairings = append(proposal.Pairings, KnockoutPairing{
			HomeTeamID: teamIDs[i],
			HomeName:   names[teamIDs[i]],
			AwayTeamID: teamIDs[i+1],
			AwayName:   names[teamIDs[i+1]],
		})
	}
	return proposal
}
