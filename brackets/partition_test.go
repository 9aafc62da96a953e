package brackets

import (
	"testing"

	"github.com/jprn/FootTour/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTeams(n int) []models.Team {
	teams := make([]models.Team, n)
	for i := range teams {
		teams[i] = models.Team{ID: i + 1, Name: string(rune('A' + i%26))}
	}
	return teams
}

func TestRecommendGroupCount(t *testing.T) {
	tests := []struct {
		name      string
		teamCount int
		maxGroups int
		expected  int
	}{
		{"eight teams split in two", 8, MaxGroupCount, 2},
		{"nine teams favor uneven 4.5 average", 9, MaxGroupCount, 2},
		{"sixteen teams split in four", 16, MaxGroupCount, 4},
		{"eighteen teams split in four", 18, MaxGroupCount, 4},
		{"tie between 4 and 5 picks the lower", 20, MaxGroupCount, 4},
		{"cap by team count", 3, MaxGroupCount, 2},
		{"cap by max groups", 40, 4, 4},
		{"floor at minimum", 2, 1, MinGroupCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RecommendGroupCount(tt.teamCount, tt.maxGroups))
		})
	}
}

func TestProposeGroupsSizesAndMembership(t *testing.T) {
	teams := makeTeams(5)

	draw, err := ProposeGroups(teams, 2)
	require.NoError(t, err)
	require.Len(t, draw.Groups, 2)

	assert.Equal(t, "A", draw.Groups[0].Name)
	assert.Equal(t, "B", draw.Groups[1].Name)
	// Round-robin dealing: 5 teams over 2 pools is 3 and 2.
	assert.Len(t, draw.Groups[0].Teams, 3)
	assert.Len(t, draw.Groups[1].Teams, 2)

	seen := make(map[int]int)
	for _, g := range draw.Groups {
		for _, team := range g.Teams {
			seen[team.ID]++
		}
	}
	require.Len(t, seen, len(teams))
	for _, team := range teams {
		assert.Equal(t, 1, seen[team.ID], "team %d must appear exactly once", team.ID)
	}
}

func TestProposeGroupsSizeSpreadAtMostOne(t *testing.T) {
	for _, tc := range []struct{ teams, k int }{
		{7, 2}, {10, 3}, {17, 4}, {16, 8},
	} {
		draw, err := ProposeGroups(makeTeams(tc.teams), tc.k)
		require.NoError(t, err)

		min, max := len(draw.Groups[0].Teams), len(draw.Groups[0].Teams)
		for _, g := range draw.Groups[1:] {
			if len(g.Teams) < min {
				min = len(g.Teams)
			}
			if len(g.Teams) > max {
				max = len(g.Teams)
			}
		}
		assert.LessOrEqual(t, max-min, 1, "%d teams over %d groups", tc.teams, tc.k)
	}
}

func TestProposeGroupsRejectsInvalidCount(t *testing.T) {
	teams := makeTeams(6)

	_, err := ProposeGroups(teams, 1)
	assert.ErrorIs(t, err, ErrInvalidGroupCount)

	_, err = ProposeGroups(teams, 7) // more groups than teams
	assert.ErrorIs(t, err, ErrInvalidGroupCount)

	_, err = ProposeGroups(makeTeams(12), 9) // above the hard maximum
	assert.ErrorIs(t, err, ErrInvalidGroupCount)
}
