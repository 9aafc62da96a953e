package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jprn/FootTour/brackets"
	"github.com/jprn/FootTour/models"
	"github.com/jprn/FootTour/repositories"
)

type UpdateMatchInput struct {
	HomeScore *int    `json:"home_score"`
	AwayScore *int    `json:"away_score"`
	Status    *string `json:"status"`
}

type MatchService interface {
	ListByTournament(ctx context.Context, tournamentID int, filter repositories.MatchFilter) ([]*models.Match, error)
	// UpdateScore records a score/status entry for a match. Group-stage
	// matches are locked once a knockout stage exists: editing pool
	// results would silently invalidate the seeding.
	UpdateScore(ctx context.Context, matchID, currentUserID int, input UpdateMatchInput) (*models.Match, error)
}

type matchService struct {
	matchRepo      repositories.MatchRepository
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	hub            *brackets.Hub
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	hub *brackets.Hub,
) MatchService {
	return &matchService{
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		hub:            hub,
	}
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int, filter repositories.MatchFilter) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %d: %w", tournamentID, err)
	}
	byID := make(map[int]*models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	for _, m := range matches {
		m.HomeTeam = byID[m.HomeTeamID]
		m.AwayTeam = byID[m.AwayTeamID]
	}
	return matches, nil
}

func (s *matchService) UpdateScore(ctx context.Context, matchID, currentUserID int, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, match.TournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.OwnerID != currentUserID {
		return nil, ErrForbiddenOperation
	}

	// Scores come and go together.
	if (input.HomeScore == nil) != (input.AwayScore == nil) {
		return nil, ErrScoresIncomplete
	}

	status := match.Status
	if input.Status != nil {
		status = models.MatchStatus(*input.Status)
		if !status.Valid() {
			return nil, ErrInvalidMatchStatus
		}
	}

	if !match.IsKnockout() {
		locked, err := s.knockoutExists(ctx, match.TournamentID)
		if err != nil {
			return nil, err
		}
		if locked {
			return nil, fmt.Errorf("%w: the knockout stage has started", ErrActionNotAvailable)
		}
	}

	if err := s.matchRepo.UpdateScoreStatus(ctx, matchID, input.HomeScore, input.AwayScore, status); err != nil {
		return nil, fmt.Errorf("failed to update match %d: %w", matchID, err)
	}

	match.HomeScore = input.HomeScore
	match.AwayScore = input.AwayScore
	match.Status = status

	s.hub.Broadcast(brackets.Event{
		Type:         brackets.EventMatchUpdated,
		TournamentID: match.TournamentID,
		Payload:      match,
	})
	return match, nil
}

func (s *matchService) knockoutExists(ctx context.Context, tournamentID int) (bool, error) {
	knockout := true
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID, repositories.MatchFilter{Knockout: &knockout})
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}
