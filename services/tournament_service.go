package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jprn/FootTour/models"
	"github.com/jprn/FootTour/repositories"
	"github.com/jprn/FootTour/storage"
)

type CreateTournamentInput struct {
	Name       string  `json:"name"`
	Sport      string  `json:"sport"`
	Location   *string `json:"location,omitempty"`
	Format     string  `json:"format"`
	PointsWin  *int    `json:"points_win,omitempty"`
	PointsDraw *int    `json:"points_draw,omitempty"`
	PointsLoss *int    `json:"points_loss,omitempty"`
}

type UpdateTournamentInput struct {
	Name     *string `json:"name,omitempty"`
	Sport    *string `json:"sport,omitempty"`
	Location *string `json:"location,omitempty"`
}

type TournamentService interface {
	Create(ctx context.Context, ownerID int, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	ListByOwner(ctx context.Context, ownerID int) ([]*models.Tournament, error)
	Update(ctx context.Context, id, currentUserID int, input UpdateTournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, id, currentUserID int) error
	UploadLogo(ctx context.Context, id, currentUserID int, contentType string, file io.Reader) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	profileRepo    repositories.ProfileRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	profileRepo repositories.ProfileRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		profileRepo:    profileRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

// Create validates the input and enforces the per-plan quota: free
// profiles own at most one tournament. The hosted original enforced
// this with row policies; here the rule lives in the service.
func (s *tournamentService) Create(ctx context.Context, ownerID int, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	format := models.TournamentFormat(input.Format)
	if format == "" {
		format = models.FormatGroupsKnockout
	}
	if !format.Valid() {
		return nil, ErrInvalidFormat
	}

	profile, err := s.profileRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if profile.Plan == models.PlanFree {
		count, err := s.tournamentRepo.CountByOwner(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("failed to count tournaments: %w", err)
		}
		if count >= models.FreePlanTournamentLimit {
			return nil, ErrTournamentQuotaReached
		}
	}

	tournament := &models.Tournament{
		OwnerID:    ownerID,
		Name:       name,
		Sport:      strings.TrimSpace(input.Sport),
		Location:   input.Location,
		Format:     format,
		PointsWin:  valueOrDefault(input.PointsWin, models.DefaultPointsWin),
		PointsDraw: valueOrDefault(input.PointsDraw, models.DefaultPointsDraw),
		PointsLoss: valueOrDefault(input.PointsLoss, models.DefaultPointsLoss),
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.Info("tournament created",
		slog.Int("tournament_id", tournament.ID),
		slog.Int("owner_id", ownerID),
		slog.String("format", string(tournament.Format)))
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) ListByOwner(ctx context.Context, ownerID int) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, t := range tournaments {
		s.populateLogoURL(t)
	}
	return tournaments, nil
}

func (s *tournamentService) Update(ctx context.Context, id, currentUserID int, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.ownedTournament(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTournamentNameRequired
		}
		tournament.Name = name
	}
	if input.Sport != nil {
		tournament.Sport = strings.TrimSpace(*input.Sport)
	}
	if input.Location != nil {
		tournament.Location = input.Location
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) Delete(ctx context.Context, id, currentUserID int) error {
	tournament, err := s.ownedTournament(ctx, id, currentUserID)
	if err != nil {
		return err
	}

	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	if tournament.LogoKey != nil {
		if err := s.uploader.Delete(ctx, *tournament.LogoKey); err != nil {
			s.logger.Warn("failed to delete tournament logo", slog.Any("error", err))
		}
	}
	return nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, id, currentUserID int, contentType string, file io.Reader) (*models.Tournament, error) {
	tournament, err := s.ownedTournament(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tournaments/%d/logo", id)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload tournament logo: %w", err)
	}
	if err := s.tournamentRepo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store logo key: %w", err)
	}

	tournament.LogoKey = &result.Key
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) ownedTournament(ctx context.Context, id, currentUserID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OwnerID != currentUserID {
		return nil, ErrForbiddenOperation
	}
	return tournament, nil
}

func (s *tournamentService) populateLogoURL(t *models.Tournament) {
	if t.LogoKey != nil {
		url := s.uploader.GetPublicURL(*t.LogoKey)
		t.LogoURL = &url
	}
}

func valueOrDefault(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}
