package brackets

import "github.com/jprn/FootTour/models"

// GenerateGroupFixtures emits one scheduled fixture per unordered pair of
// teams in the group: n teams yield n*(n-1)/2 matches. Pairs come out in
// index order (i, j) with i < j over the given team list; there is no
// home/away balancing or date assignment.
func GenerateGroupFixtures(tournamentID int, group models.Group, teams []models.Team) []models.Match {
	n := len(teams)
	matches := make([]models.Match, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			gid := group.ID
			matches = append(matches, models.Match{
				TournamentID: tournamentID,
				GroupID:      &gid,
				Round:        GroupRoundLabel(group.Name),
				HomeTeamID:   teams[i].ID,
				AwayTeamID:   teams[j].ID,
				Status:       models.MatchStatusScheduled,
			})
		}
	}
	return matches
}
