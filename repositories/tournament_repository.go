package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jprn/FootTour/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentOwnerInvalid = errors.New("tournament owner conflict or invalid")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	ListByOwner(ctx context.Context, ownerID int) ([]*models.Tournament, error)
	CountByOwner(ctx context.Context, ownerID int) (int, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, owner_id, name, sport, location, format, points_win, points_draw, points_loss, logo_key, created_at`

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments
			(owner_id, name, sport, location, format, points_win, points_draw, points_loss)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		tournament.OwnerID,
		tournament.Name,
		tournament.Sport,
		tournament.Location,
		tournament.Format,
		tournament.PointsWin,
		tournament.PointsDraw,
		tournament.PointsLoss,
	).Scan(&tournament.ID, &tournament.CreatedAt)

	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	tournament := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tournament.ID,
		&tournament.OwnerID,
		&tournament.Name,
		&tournament.Sport,
		&tournament.Location,
		&tournament.Format,
		&tournament.PointsWin,
		&tournament.PointsDraw,
		&tournament.PointsLoss,
		&tournament.LogoKey,
		&tournament.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (r *postgresTournamentRepository) ListByOwner(ctx context.Context, ownerID int) ([]*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if scanErr := rows.Scan(
			&t.ID,
			&t.OwnerID,
			&t.Name,
			&t.Sport,
			&t.Location,
			&t.Format,
			&t.PointsWin,
			&t.PointsDraw,
			&t.PointsLoss,
			&t.LogoKey,
			&t.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) CountByOwner(ctx context.Context, ownerID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tournaments WHERE owner_id = $1`, ownerID).Scan(&count)
	return count, err
}

func (r *postgresTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	query := `
		UPDATE tournaments
		SET name = $1, sport = $2, location = $3, format = $4, points_win = $5, points_draw = $6, points_loss = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		tournament.Name,
		tournament.Sport,
		tournament.Location,
		tournament.Format,
		tournament.PointsWin,
		tournament.PointsDraw,
		tournament.PointsLoss,
		tournament.ID,
	)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tournaments SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
		if pqErr.Constraint == "tournaments_owner_id_fkey" {
			return ErrTournamentOwnerInvalid
		}
	}
	return err
}
