package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules.
	ErrValidationFailed      = errors.New("validation failed")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrTeamNameRequired      = errors.New("team name is required")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrInvalidFormat         = errors.New("invalid tournament format")
	ErrInvalidMatchStatus    = errors.New("invalid match status")
	ErrScoresIncomplete      = errors.New("scores must be set together or not at all")
	ErrTournamentQuotaReached = errors.New("free plan tournament limit reached")

	// Conflicts.
	ErrEmailConflict = errors.New("email address is already in use")

	// Authentication and authorization.
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors, more context than ErrNotFound.
	ErrProfileNotFound    = errors.New("profile not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrMatchNotFound      = errors.New("match not found")

	// Scheduling preconditions: the action exists but the persisted
	// state does not currently permit it. Surfaced to the UI as
	// unavailable, not as a failure.
	ErrActionNotAvailable     = errors.New("action is not currently permitted")
	ErrRegenerationBlocked    = errors.New("groups cannot be regenerated once results exist or the final stage is set up")
	ErrGroupMatchesUnfinished = errors.New("all group matches must be finished first")
)
