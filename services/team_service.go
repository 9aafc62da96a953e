package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jprn/FootTour/models"
	"github.com/jprn/FootTour/repositories"
	"github.com/jprn/FootTour/storage"
)

type TeamService interface {
	Create(ctx context.Context, tournamentID, currentUserID int, name string) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error)
	Rename(ctx context.Context, teamID, currentUserID int, name string) (*models.Team, error)
	Delete(ctx context.Context, teamID, currentUserID int) error
	UploadLogo(ctx context.Context, teamID, currentUserID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	uploader       storage.FileUploader
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		uploader:       uploader,
	}
}

func (s *teamService) Create(ctx context.Context, tournamentID, currentUserID int, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if err := s.checkOwnership(ctx, tournamentID, currentUserID); err != nil {
		return nil, err
	}

	team := &models.Team{TournamentID: tournamentID, Name: name}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamTournamentInvalid) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		s.populateLogoURL(t)
	}
	return teams, nil
}

func (s *teamService) Rename(ctx context.Context, teamID, currentUserID int, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team, err := s.ownedTeam(ctx, teamID, currentUserID)
	if err != nil {
		return nil, err
	}
	team.Name = name
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to rename team: %w", err)
	}
	s.populateLogoURL(team)
	return team, nil
}

// Delete removes the team; fixture references cascade in the store.
func (s *teamService) Delete(ctx context.Context, teamID, currentUserID int) error {
	team, err := s.ownedTeam(ctx, teamID, currentUserID)
	if err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if team.LogoKey != nil {
		// Best effort: a stale logo object is harmless.
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID, currentUserID int, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.ownedTeam(ctx, teamID, currentUserID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/logo", teamID)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}
	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store logo key: %w", err)
	}

	team.LogoKey = &result.Key
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) ownedTeam(ctx context.Context, teamID, currentUserID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if err := s.checkOwnership(ctx, team.TournamentID, currentUserID); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) checkOwnership(ctx context.Context, tournamentID, currentUserID int) error {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	if tournament.OwnerID != currentUserID {
		return ErrForbiddenOperation
	}
	return nil
}

func (s *teamService) populateLogoURL(t *models.Team) {
	if t.LogoKey != nil {
		url := s.uploader.GetPublicURL(*t.LogoKey)
		t.LogoURL = &url
	}
}
