package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jprn/FootTour/models"
)

var ErrGroupNotFound = errors.New("group not found")

type GroupRepository interface {
	// CreateBatch inserts all groups of one partitioning run, filling in
	// generated IDs. Groups are only ever created as a full set.
	CreateBatch(ctx context.Context, groups []*models.Group) error
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Group, error)
	CountByTournament(ctx context.Context, tournamentID int) (int, error)
	DeleteByTournament(ctx context.Context, tournamentID int) error
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) CreateBatch(ctx context.Context, groups []*models.Group) error {
	if len(groups) == 0 {
		return nil
	}

	query := `
		INSERT INTO groups (tournament_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at`

	for _, g := range groups {
		if err := r.db.QueryRowContext(ctx, query, g.TournamentID, g.Name).Scan(&g.ID, &g.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresGroupRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Group, error) {
	query := `
		SELECT id, tournament_id, name, created_at
		FROM groups
		WHERE tournament_id = $1
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]*models.Group, 0)
	for rows.Next() {
		var g models.Group
		if scanErr := rows.Scan(&g.ID, &g.TournamentID, &g.Name, &g.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		groups = append(groups, &g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *postgresGroupRepository) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM groups WHERE tournament_id = $1`, tournamentID).Scan(&count)
	return count, err
}

func (r *postgresGroupRepository) DeleteByTournament(ctx context.Context, tournamentID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE tournament_id = $1`, tournamentID)
	return err
}
