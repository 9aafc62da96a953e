package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jprn/FootTour/models"
	"github.com/jprn/FootTour/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTournamentRepo struct {
	fakeTournamentRepo
	count   int
	created []*models.Tournament
}

func (r *countingTournamentRepo) CountByOwner(ctx context.Context, ownerID int) (int, error) {
	return r.count, nil
}

func (r *countingTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	t.ID = len(r.created) + 1
	r.created = append(r.created, t)
	return nil
}

func newTournamentFixture(plan models.Plan, owned int) (TournamentService, *countingTournamentRepo) {
	profiles := newFakeProfileRepo()
	profile := &models.Profile{Email: "owner@example.com", Plan: plan}
	_ = profiles.Create(context.Background(), profile)

	repo := &countingTournamentRepo{count: owned}
	svc := NewTournamentService(repo, profiles, storage.NoopUploader(), slog.Default())
	return svc, repo
}

func TestCreateTournamentDefaults(t *testing.T) {
	svc, repo := newTournamentFixture(models.PlanFree, 0)

	created, err := svc.Create(context.Background(), 1, CreateTournamentInput{Name: "  Summer Cup  "})
	require.NoError(t, err)

	assert.Equal(t, "Summer Cup", created.Name)
	assert.Equal(t, models.FormatGroupsKnockout, created.Format)
	assert.Equal(t, models.DefaultPointsWin, created.PointsWin)
	assert.Equal(t, models.DefaultPointsDraw, created.PointsDraw)
	assert.Equal(t, models.DefaultPointsLoss, created.PointsLoss)
	require.Len(t, repo.created, 1)
}

func TestCreateTournamentValidation(t *testing.T) {
	svc, _ := newTournamentFixture(models.PlanFree, 0)

	_, err := svc.Create(context.Background(), 1, CreateTournamentInput{Name: "   "})
	assert.ErrorIs(t, err, ErrTournamentNameRequired)

	_, err = svc.Create(context.Background(), 1, CreateTournamentInput{Name: "Cup", Format: "league"})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCreateTournamentFreePlanQuota(t *testing.T) {
	svc, repo := newTournamentFixture(models.PlanFree, 1)

	_, err := svc.Create(context.Background(), 1, CreateTournamentInput{Name: "Second Cup"})
	assert.ErrorIs(t, err, ErrTournamentQuotaReached)
	assert.Empty(t, repo.created)
}

func TestCreateTournamentProPlanUnlimited(t *testing.T) {
	svc, repo := newTournamentFixture(models.PlanPro, 5)

	_, err := svc.Create(context.Background(), 1, CreateTournamentInput{Name: "Sixth Cup"})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
}

func TestCreateTournamentCustomPoints(t *testing.T) {
	svc, _ := newTournamentFixture(models.PlanPro, 0)

	win, draw := 2, 0
	created, err := svc.Create(context.Background(), 1, CreateTournamentInput{
		Name:       "Chess Open",
		Format:     string(models.FormatKnockout),
		PointsWin:  &win,
		PointsDraw: &draw,
	})
	require.NoError(t, err)
	assert.Equal(t, models.FormatKnockout, created.Format)
	assert.Equal(t, 2, created.PointsWin)
	assert.Equal(t, 0, created.PointsDraw)
}
