package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jprn/FootTour/models"
	"github.com/lib/pq"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileEmailConflict = errors.New("email address is already in use")
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id int) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	UpdatePlan(ctx context.Context, id int, plan models.Plan) error
}

type postgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

func (r *postgresProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (email, password_hash, plan)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		profile.Email,
		profile.PasswordHash,
		profile.Plan,
	).Scan(&profile.ID, &profile.CreatedAt)

	return r.handleProfileError(err)
}

func (r *postgresProfileRepository) GetByID(ctx context.Context, id int) (*models.Profile, error) {
	query := `
		SELECT id, email, password_hash, plan, created_at
		FROM profiles
		WHERE id = $1`

	return r.scanProfile(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `
		SELECT id, email, password_hash, plan, created_at
		FROM profiles
		WHERE email = $1`

	return r.scanProfile(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresProfileRepository) UpdatePlan(ctx context.Context, id int, plan models.Plan) error {
	query := `UPDATE profiles SET plan = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, plan, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}

func (r *postgresProfileRepository) scanProfile(row *sql.Row) (*models.Profile, error) {
	profile := &models.Profile{}
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&profile.PasswordHash,
		&profile.Plan,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *postgresProfileRepository) handleProfileError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
		if pqErr.Constraint == "profiles_email_key" {
			return ErrProfileEmailConflict
		}
	}
	return err
}
