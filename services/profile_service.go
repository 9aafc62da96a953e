package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jprn/FootTour/models"
	"github.com/jprn/FootTour/repositories"
)

type ProfileService interface {
	GetByID(ctx context.Context, id int) (*models.Profile, error)
	// Checkout simulates a successful billing checkout for the given
	// plan. No payment provider is involved: the plan is flipped
	// directly, mirroring the front-end's simulated billing page.
	Checkout(ctx context.Context, profileID int, plan models.Plan) (*models.Profile, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
	logger      *slog.Logger
}

func NewProfileService(profileRepo repositories.ProfileRepository, logger *slog.Logger) ProfileService {
	return &profileService{profileRepo: profileRepo, logger: logger}
}

func (s *profileService) GetByID(ctx context.Context, id int) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) Checkout(ctx context.Context, profileID int, plan models.Plan) (*models.Profile, error) {
	if plan != models.PlanFree && plan != models.PlanPro {
		return nil, fmt.Errorf("%w: unknown plan %q", ErrValidationFailed, plan)
	}

	if err := s.profileRepo.UpdatePlan(ctx, profileID, plan); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	s.logger.Info("simulated checkout completed",
		slog.Int("profile_id", profileID),
		slog.String("plan", string(plan)))

	return s.GetByID(ctx, profileID)
}
