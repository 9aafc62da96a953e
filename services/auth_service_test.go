package services

import (
	"context"
	"strings"
	"testing"

	"github.com/jprn/FootTour/models"
	"github.com/jprn/FootTour/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
	nextID   int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*models.Profile), nextID: 1}
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	if _, exists := r.profiles[profile.Email]; exists {
		return repositories.ErrProfileEmailConflict
	}
	profile.ID = r.nextID
	r.nextID++
	r.profiles[profile.Email] = profile
	return nil
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, id int) (*models.Profile, error) {
	for _, p := range r.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repositories.ErrProfileNotFound
}

func (r *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	if p, ok := r.profiles[email]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (r *fakeProfileRepo) UpdatePlan(ctx context.Context, id int, plan models.Plan) error {
	for _, p := range r.profiles {
		if p.ID == id {
			p.Plan = plan
			return nil
		}
	}
	return repositories.ErrProfileNotFound
}

func TestSignUp(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewAuthService(repo)

	profile, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "  Organizer@Example.COM ",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "organizer@example.com", profile.Email)
	assert.Equal(t, models.PlanFree, profile.Plan)
	assert.NotEqual(t, "correct horse", profile.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte("correct horse")))
}

func TestSignUpValidation(t *testing.T) {
	svc := NewAuthService(newFakeProfileRepo())

	_, err := svc.SignUp(context.Background(), SignUpInput{Email: "not-an-email", Password: "long enough"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.SignUp(context.Background(), SignUpInput{Email: "a@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeProfileRepo())

	input := SignUpInput{Email: "a@example.com", Password: "long enough"}
	_, err := svc.SignUp(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), input)
	assert.ErrorIs(t, err, ErrEmailConflict)
}

func TestSignIn(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewAuthService(repo)

	_, err := svc.SignUp(context.Background(), SignUpInput{Email: "a@example.com", Password: "long enough"})
	require.NoError(t, err)

	profile, err := svc.SignIn(context.Background(), SignInInput{Email: "A@example.com", Password: "long enough"})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", profile.Email)

	_, err = svc.SignIn(context.Background(), SignInInput{Email: "a@example.com", Password: "wrong password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown accounts and wrong passwords are indistinguishable.
	_, err = svc.SignIn(context.Background(), SignInInput{Email: "nobody@example.com", Password: "long enough"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUpRejectsOverlongGarbageEmail(t *testing.T) {
	svc := NewAuthService(newFakeProfileRepo())

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    strings.Repeat("a", 300),
		Password: "long enough",
	})
	assert.ErrorIs(t, err, ErrValidationFailed)
}
