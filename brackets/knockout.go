package brackets

import "github.com/jprn/FootTour/models"

// KnockoutPairing is one proposed knockout fixture. Seed ranks are only
// set when the pairing was derived from group standings.
type KnockoutPairing struct {
	HomeTeamID int    `json:"home_team_id"`
	HomeName   string `json:"home_name"`
	HomeRank   int    `json:"home_rank,omitempty"`
	AwayTeamID int    `json:"away_team_id"`
	AwayName   string `json:"away_name"`
	AwayRank   int    `json:"away_rank,omitempty"`
}

// KnockoutProposal is the preview half of the two-phase generation flow.
// Nothing is persisted until the caller reviews it and commits: this is
// where the operator confirms the pairing list, and where teams left out
// of round one show up as byes instead of vanishing silently.
type KnockoutProposal struct {
	TournamentID int               `json:"tournament_id"`
	RoundLabel   string            `json:"round_label"`
	Pairings     []KnockoutPairing `json:"pairings"`
	Byes         []models.Team     `json:"byes,omitempty"`
}

// Matches materializes the proposal as scheduled fixtures for the store.
func (p *KnockoutProposal) Matches() []models.Match {
	matches := make([]models.Match, 0, len(p.Pairings))
	for _, pair := range p.Pairings {
		matches = append(matches, models.Match{
			TournamentID: p.TournamentID,
			Round:        p.RoundLabel,
			HomeTeamID:   pair.HomeTeamID,
			AwayTeamID:   pair.AwayTeamID,
			Status:       models.MatchStatusScheduled,
		})
	}
	return matches
}

// ProposeInitialKnockout builds the first round of a pure-knockout
// tournament from the team list in creation order. The bracket covers
// the largest power of two not exceeding the team count, pairing
// consecutive teams (0 vs 1, 2 vs 3, …); teams past the cutoff receive
// no round-one match and are listed as byes on the proposal so the
// operator sees them before committing.
func ProposeInitialKnockout(tournamentID int, teams []models.Team) (*KnockoutProposal, error) {
	n := len(teams)
	if n < 2 {
		return nil, ErrNotEnoughTeams
	}

	pow2 := 1
	for pow2*2 <= n {
		pow2 *= 2
	}

	proposal := &KnockoutProposal{
		TournamentID: tournamentID,
		RoundLabel:   RoundFirstRound,
	}
	for i := 0; i < pow2; i += 2 {
		proposal.Pairings = append(proposal.Pairings, KnockoutPairing{
			HomeTeamID: teams[i].ID,
			HomeName:   teams[i].Name,
			AwayTeamID: teams[i+1].ID,
			AwayName:   teams[i+1].Name,
		})
	}
	proposal.Byes = append(proposal.Byes, teams[pow2:]...)
	return proposal, nil
}

// QualifierOptions lists the per-group qualifier counts a tournament can
// use, given the per-group tables: 2 and 4, filtered by the smallest
// group's size.
func QualifierOptions(tables [][]models.StandingRow) []int {
	if len(tables) == 0 {
		return nil
	}
	minSize := len(tables[0])
	for _, t := range tables[1:] {
		if len(t) < minSize {
			minSize = len(t)
		}
	}
	var options []int
	for _, k := range []int{2, 4} {
		if k <= minSize {
			options = append(options, k)
		}
	}
	return options
}

// ProposeKnockoutFromStandings seeds a knockout stage from group tables.
// tables must follow the group display order (A, B, C…). The seed list
// interleaves equal ranks across groups — [A1, B1, …, A2, B2, …] — and
// seed i meets seed N-1-i, keeping top seeds and group-mates apart for as
// long as possible. The round label is derived from the seed count.
func ProposeKnockoutFromStandings(tournamentID int, tables [][]models.StandingRow, qualifiersPerGroup int) (*KnockoutProposal, error) {
	validK := false
	for _, k := range QualifierOptions(tables) {
		if k == qualifiersPerGroup {
			validK = true
			break
		}
	}
	if !validK {
		return nil, ErrInvalidQualifierCount
	}

	var seeds []models.StandingRow
	for r := 0; r < qualifiersPerGroup; r++ {
		for _, table := range tables {
			if r < len(table) {
				seeds = append(seeds, table[r])
			}
		}
	}
	if len(seeds) < 2 {
		return nil, ErrNotEnoughQualifiers
	}

	proposal := &KnockoutProposal{
		TournamentID: tournamentID,
		RoundLabel:   ComputeRoundLabel(len(seeds)),
	}
	for i := 0; i < len(seeds)/2; i++ {
		home := seeds[i]
		away := seeds[len(seeds)-1-i]
		proposal.Pairings = append(proposal.Pairings, KnockoutPairing{
			HomeTeamID: home.TeamID,
			HomeName:   home.TeamName,
			HomeRank:   home.Rank,
			AwayTeamID: away.TeamID,
			AwayName:   away.TeamName,
			AwayRank:   away.Rank,
		})
	}
	return proposal, nil
}
