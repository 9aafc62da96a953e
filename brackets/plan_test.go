package brackets

import (
	"testing"

	"github.com/jprn/FootTour/models"
	"github.com/stretchr/testify/assert"
)

func groupMatchWithStatus(status models.MatchStatus) models.Match {
	m := finishedMatch(1, 2, 1, 0)
	m.Status = status
	if status == models.MatchStatusScheduled {
		m.HomeScore = nil
		m.AwayScore = nil
	}
	return m
}

func TestPlanNextPriorityOrder(t *testing.T) {
	tests := []struct {
		name     string
		snapshot Snapshot
		expected Action
	}{
		{
			name:     "knockout format with no matches",
			snapshot: Snapshot{Format: models.FormatKnockout, TeamCount: 8},
			expected: ActionGenerateKnockout,
		},
		{
			name:     "groups format with no groups",
			snapshot: Snapshot{Format: models.FormatGroupsKnockout, TeamCount: 8},
			expected: ActionCreateGroups,
		},
		{
			name:     "groups exist but no fixtures",
			snapshot: Snapshot{Format: models.FormatGroupsKnockout, TeamCount: 8, GroupCount: 2},
			expected: ActionGenerateGroupFixtures,
		},
		{
			name: "all group matches finished",
			snapshot: Snapshot{
				Format:     models.FormatGroupsKnockout,
				TeamCount:  4,
				GroupCount: 2,
				Matches: []models.Match{
					finishedMatch(1, 2, 1, 0),
					finishedMatch(3, 4, 2, 2),
				},
			},
			expected: ActionKnockoutFromStandings,
		},
		{
			name: "group matches still open",
			snapshot: Snapshot{
				Format:     models.FormatGroupsKnockout,
				TeamCount:  4,
				GroupCount: 2,
				Matches: []models.Match{
					finishedMatch(1, 2, 1, 0),
					groupMatchWithStatus(models.MatchStatusScheduled),
				},
			},
			expected: ActionNone,
		},
		{
			name: "knockout round complete",
			snapshot: Snapshot{
				Format:    models.FormatKnockout,
				TeamCount: 4,
				Matches: []models.Match{
					finishedKO(RoundSemifinal, 1, 2, 2, 0),
					finishedKO(RoundSemifinal, 3, 4, 1, 0),
				},
			},
			expected: ActionAdvanceBracket,
		},
		{
			name: "knockout round still in play",
			snapshot: Snapshot{
				Format:    models.FormatKnockout,
				TeamCount: 4,
				Matches: []models.Match{
					finishedKO(RoundSemifinal, 1, 2, 2, 0),
					knockoutMatch(RoundSemifinal, 3, 4, 0, 0, models.MatchStatusScheduled),
				},
			},
			expected: ActionNone,
		},
		{
			name: "drawn knockout result offers nothing",
			snapshot: Snapshot{
				Format:    models.FormatKnockout,
				TeamCount: 4,
				Matches: []models.Match{
					finishedKO(RoundSemifinal, 1, 2, 1, 1),
					finishedKO(RoundSemifinal, 3, 4, 1, 0),
				},
			},
			expected: ActionNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PlanNext(tt.snapshot).Action)
		})
	}
}

func TestPlanNextRegenerationWindow(t *testing.T) {
	tests := []struct {
		name     string
		matches  []models.Match
		expected bool
	}{
		{"no matches", nil, true},
		{
			"scheduled group matches only",
			[]models.Match{groupMatchWithStatus(models.MatchStatusScheduled)},
			true,
		},
		{
			"group match live",
			[]models.Match{groupMatchWithStatus(models.MatchStatusLive)},
			false,
		},
		{
			"group match finished",
			[]models.Match{finishedMatch(1, 2, 1, 0)},
			false,
		},
		{
			"early knockout round only",
			[]models.Match{knockoutMatch(RoundSemifinal, 1, 2, 0, 0, models.MatchStatusScheduled)},
			true,
		},
		{
			"third place scheduled",
			[]models.Match{knockoutMatch(RoundThirdPlace, 2, 4, 0, 0, models.MatchStatusScheduled)},
			false,
		},
		{
			"final scheduled",
			[]models.Match{knockoutMatch(RoundFinal, 1, 3, 0, 0, models.MatchStatusScheduled)},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := Snapshot{Format: models.FormatGroupsKnockout, GroupCount: 2, Matches: tt.matches}
			assert.Equal(t, tt.expected, PlanNext(snapshot).RegenerationAllowed)
		})
	}
}
