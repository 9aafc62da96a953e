package brackets

import "github.com/jprn/FootTour/models"

// Action is the single generation step the orchestrator deems applicable
// for the current persisted state of a tournament.
type Action string

const (
	ActionNone                  Action = ""
	ActionGenerateKnockout      Action = "generate_knockout"
	ActionCreateGroups          Action = "create_groups"
	ActionGenerateGroupFixtures Action = "generate_group_fixtures"
	ActionKnockoutFromStandings Action = "knockout_from_standings"
	ActionAdvanceBracket        Action = "advance_bracket"
)

// Snapshot is the persisted state the orchestrator decides on. The
// caller supplies it from the store; the engine holds no state of its
// own.
type Snapshot struct {
	Format     models.TournamentFormat
	TeamCount  int
	GroupCount int
	Matches    []models.Match
}

// Plan is the orchestrator's verdict: at most one applicable action,
// plus whether a destructive group regeneration is currently permitted.
type Plan struct {
	Action Action `json:"action"`

	// RegenerationAllowed is true while no group match has gone live or
	// finished and no third-place or final round exists yet. Outside
	// that window, discarding groups would destroy entered results.
	RegenerationAllowed bool `json:"regeneration_allowed"`
}

// PlanNext decides which generation step applies, in priority order:
// initial knockout for a pure-knockout tournament with no matches;
// group creation while a groups tournament has no groups; group
// fixtures once groups exist but no matches do; the knockout stage once
// every group match is finished; bracket advancement once knockout
// rounds are in play. Actions gated on operator confirmation
// (knockout-from-standings, bracket stages) are only surfaced as
// available, never executed here.
func PlanNext(s Snapshot) Plan {
	var (
		groupMatches    []models.Match
		knockoutMatches []models.Match
	)
	for _, m := range s.Matches {
		if m.IsKnockout() {
			knockoutMatches = append(knockoutMatches, m)
		} else {
			groupMatches = append(groupMatches, m)
		}
	}

	plan := Plan{RegenerationAllowed: regenerationAllowed(groupMatches, knockoutMatches)}

	switch {
	case s.Format == models.FormatKnockout && len(s.Matches) == 0:
		plan.Action = ActionGenerateKnockout
	case s.Format == models.FormatGroupsKnockout && s.GroupCount == 0:
		plan.Action = ActionCreateGroups
	case s.GroupCount > 0 && len(s.Matches) == 0:
		plan.Action = ActionGenerateGroupFixtures
	case len(groupMatches) > 0 && len(knockoutMatches) == 0 && allFinished(groupMatches):
		plan.Action = ActionKnockoutFromStandings
	case len(knockoutMatches) > 0:
		if stage, err := NextStage(0, knockoutMatches, nil); err == nil && stage != nil {
			plan.Action = ActionAdvanceBracket
		}
	}
	return plan
}

func allFinished(matches []models.Match) bool {
	for _, m := range matches {
		if m.Status != models.MatchStatusFinished {
			return false
		}
	}
	return true
}

func regenerationAllowed(groupMatches, knockoutMatches []models.Match) bool {
	for _, m := range groupMatches {
		if m.Status != models.MatchStatusScheduled {
			return false
		}
	}
	for _, m := range knockoutMatches {
		if isFinalRound(m.Round) || isThirdPlaceRound(m.Round) {
			return false
		}
	}
	return true
}
