package brackets

import (
	"math"
	"math/rand"

	"github.com/jprn/FootTour/models"
)

const (
	// MinGroupCount and MaxGroupCount bound the number of pools a
	// tournament can be split into. The effective upper bound is also
	// capped by the team count.
	MinGroupCount = 2
	MaxGroupCount = 8

	targetGroupSize    = 4.5
	unevenSplitPenalty = 0.3
)

var groupLetters = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// RecommendGroupCount suggests a group count for teamCount teams, aiming
// for an average pool of 4-5 teams and preferring even splits. It is a
// default offered to the operator, who may pick any value in
// [MinGroupCount, min(maxGroups, teamCount)] instead.
func RecommendGroupCount(teamCount, maxGroups int) int {
	if maxGroups > teamCount {
		maxGroups = teamCount
	}
	if maxGroups < MinGroupCount {
		return MinGroupCount
	}

	bestK := MinGroupCount
	bestScore := math.Inf(1)
	for k := MinGroupCount; k <= maxGroups; k++ {
		score := math.Abs(float64(teamCount)/float64(k) - targetGroupSize)
		if teamCount%k != 0 {
			score += unevenSplitPenalty
		}
		if score < bestScore {
			bestScore = score
			bestK = k
		}
	}
	return bestK
}

// GroupSeed is one proposed pool: a sequential letter label and its
// member teams.
type GroupSeed struct {
	Name  string        `json:"name"`
	Teams []models.Team `json:"teams"`
}

// GroupDraw is the result of one partitioning run, ready to be persisted
// (groups created, team assignments applied) by the caller.
type GroupDraw struct {
	Groups []GroupSeed `json:"groups"`
}

// ProposeGroups randomly partitions teams into k pools labeled A, B, C…
// The shuffle is a fresh uniform permutation every run, deliberately not
// reproducible. Teams are dealt round-robin over the pools, so sizes
// differ by at most 1.
//
// k must satisfy MinGroupCount <= k <= min(MaxGroupCount, len(teams)).
func ProposeGroups(teams []models.Team, k int) (*GroupDraw, error) {
	max := MaxGroupCount
	if len(teams) < max {
		max = len(teams)
	}
	if k < MinGroupCount || k > max {
		return nil, ErrInvalidGroupCount
	}

	shuffled := make([]models.Team, len(teams))
	copy(shuffled, teams)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	draw := &GroupDraw{Groups: make([]GroupSeed, k)}
	for i := 0; i < k; i++ {
		draw.Groups[i] = GroupSeed{Name: string(groupLetters[i])}
	}
	for i, team := range shuffled {
		g := &draw.Groups[i%k]
		g.Teams = append(g.Teams, team)
	}
	return draw, nil
}
