package brackets

import "errors"

var (
	// Invalid input: rejected before any computation.
	ErrNotEnoughTeams         = errors.New("not enough teams (minimum 2 required)")
	ErrInvalidGroupCount      = errors.New("group count outside the allowed range")
	ErrInvalidQualifierCount  = errors.New("invalid number of qualifiers per group")
	ErrNotEnoughQualifiers    = errors.New("not enough qualifying teams for a knockout stage")

	// Data inconsistency: a finished knockout match with equal scores has
	// no winner, so progression stalls until the operator corrects it.
	ErrKnockoutDraw = errors.New("knockout match finished with equal scores")
)
