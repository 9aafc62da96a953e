package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jprn/FootTour/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchTeamInvalid       = errors.New("match team conflict or invalid")
)

// MatchScope selects which fixtures a bulk delete applies to.
type MatchScope string

const (
	ScopeAll        MatchScope = "all"
	ScopeGroupStage MatchScope = "group_stage" // group_id IS NOT NULL
	ScopeKnockout   MatchScope = "knockout"    // group_id IS NULL
)

// MatchFilter narrows ListByTournament. Nil fields are ignored.
type MatchFilter struct {
	GroupID  *int
	Status   *models.MatchStatus
	Knockout *bool // true: knockout only, false: group stage only
}

type MatchRepository interface {
	CreateBatch(ctx context.Context, matches []*models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int, filter MatchFilter) ([]*models.Match, error)
	CountByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) (int, error)
	UpdateScoreStatus(ctx context.Context, id int, homeScore, awayScore *int, status models.MatchStatus) error
	DeleteByTournament(ctx context.Context, tournamentID int, scope MatchScope) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, tournament_id, group_id, round, home_team_id, away_team_id, home_score, away_score, status, start_time, created_at`

func (r *postgresMatchRepository) CreateBatch(ctx context.Context, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	query := `
		INSERT INTO matches
			(tournament_id, group_id, round, home_team_id, away_team_id, status, start_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	for _, m := range matches {
		err := r.db.QueryRowContext(ctx, query,
			m.TournamentID,
			m.GroupID,
			m.Round,
			m.HomeTeamID,
			m.AwayTeamID,
			m.Status,
			m.StartTime,
		).Scan(&m.ID, &m.CreatedAt)
		if err != nil {
			return r.handleMatchError(err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.TournamentID,
		&match.GroupID,
		&match.Round,
		&match.HomeTeamID,
		&match.AwayTeamID,
		&match.HomeScore,
		&match.AwayScore,
		&match.Status,
		&match.StartTime,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int, filter MatchFilter) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	placeholderIndex := 2

	if filter.GroupID != nil {
		queryBuilder.WriteString(" AND group_id = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *filter.GroupID)
		placeholderIndex++
	}
	if filter.Status != nil {
		queryBuilder.WriteString(" AND status = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *filter.Status)
		placeholderIndex++
	}
	if filter.Knockout != nil {
		if *filter.Knockout {
			queryBuilder.WriteString(" AND group_id IS NULL")
		} else {
			queryBuilder.WriteString(" AND group_id IS NOT NULL")
		}
	}

	queryBuilder.WriteString(" ORDER BY id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if scanErr := rows.Scan(
			&m.ID,
			&m.TournamentID,
			&m.GroupID,
			&m.Round,
			&m.HomeTeamID,
			&m.AwayTeamID,
			&m.HomeScore,
			&m.AwayScore,
			&m.Status,
			&m.StartTime,
			&m.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) CountByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) (int, error) {
	query := `SELECT COUNT(*) FROM matches WHERE tournament_id = $1`
	args := []interface{}{tournamentID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}

	var count int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) UpdateScoreStatus(ctx context.Context, id int, homeScore, awayScore *int, status models.MatchStatus) error {
	query := `
		UPDATE matches
		SET home_score = $1, away_score = $2, status = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, homeScore, awayScore, status, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, tournamentID int, scope MatchScope) error {
	query := `DELETE FROM matches WHERE tournament_id = $1`
	switch scope {
	case ScopeGroupStage:
		query += ` AND group_id IS NOT NULL`
	case ScopeKnockout:
		query += ` AND group_id IS NULL`
	}

	_, err := r.db.ExecContext(ctx, query, tournamentID)
	return err
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
		switch pqErr.Constraint {
		case "matches_tournament_id_fkey":
			return ErrMatchTournamentInvalid
		case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
			return ErrMatchTeamInvalid
		}
	}
	return err
}
