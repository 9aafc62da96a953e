package brackets

// Round labels written into the matches table. Group-stage matches get a
// "Group X" label, knockout matches one of the stage labels below. The
// engine only ever compares labels it generated itself.
const (
	RoundFirstRound   = "First round"
	RoundOf16         = "Round of 16"
	RoundQuarterfinal = "Quarterfinal"
	RoundSemifinal    = "Semifinal"
	RoundThirdPlace   = "Third place"
	RoundFinal        = "Final"
	RoundFinalStage   = "Final stage"
)

// GroupRoundLabel returns the round label for pool matches of a group.
func GroupRoundLabel(groupName string) string {
	return "Group " + groupName
}

// ComputeRoundLabel names a knockout round by the number of teams
// entering it.
func ComputeRoundLabel(teamCount int) string {
	switch {
	case teamCount >= 16:
		return RoundOf16
	case teamCount >= 8:
		return RoundQuarterfinal
	case teamCount >= 4:
		return RoundSemifinal
	case teamCount == 2:
		return RoundFinal
	default:
		return RoundFinalStage
	}
}

func isFinalRound(label string) bool {
	return label == RoundFinal
}

func isThirdPlaceRound(label string) bool {
	return label == RoundThirdPlace
}
