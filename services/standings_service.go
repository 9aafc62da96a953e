package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jprn/FootTour/brackets"
	"github.com/jprn/FootTour/models"
	"github.com/jprn/FootTour/repositories"
	"golang.org/x/sync/errgroup"
)

// GroupTable is one group's ranked standings.
type GroupTable struct {
	Group models.Group         `json:"group"`
	Rows  []models.StandingRow `json:"rows"`
}

type StandingsService interface {
	// TablesByGroup recomputes every group table of the tournament from
	// current team and match snapshots. Nothing is persisted.
	TablesByGroup(ctx context.Context, tournamentID int) ([]GroupTable, error)
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	groupRepo      repositories.GroupRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	groupRepo repositories.GroupRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
) StandingsService {
	return &standingsService{
		tournamentRepo: tournamentRepo,
		groupRepo:      groupRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
	}
}

func (s *standingsService) TablesByGroup(ctx context.Context, tournamentID int) ([]GroupTable, error) {
	var (
		tournament *models.Tournament
		groups     []*models.Group
		teams      []*models.Team
		matches    []*models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gCtx, tournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to fetch tournament %d: %w", tournamentID, err)
		}
		tournament = t
		return nil
	})
	g.Go(func() error {
		var err error
		groups, err = s.groupRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	g.Go(func() error {
		groupStage := false
		var err error
		matches, err = s.matchRepo.ListByTournament(gCtx, tournamentID, repositories.MatchFilter{Knockout: &groupStage})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rule := brackets.ScoringRuleFor(tournament)

	teamsByGroup := make(map[int][]models.Team)
	for _, t := range teams {
		if t.GroupID != nil {
			teamsByGroup[*t.GroupID] = append(teamsByGroup[*t.GroupID], *t)
		}
	}
	matchesByGroup := make(map[int][]models.Match)
	for _, m := range matches {
		if m.GroupID != nil {
			matchesByGroup[*m.GroupID] = append(matchesByGroup[*m.GroupID], *m)
		}
	}

	tables := make([]GroupTable, 0, len(groups))
	for _, group := range groups {
		tables = append(tables, GroupTable{
			Group: *group,
			Rows:  brackets.ComputeStandings(teamsByGroup[group.ID], matchesByGroup[group.ID], rule),
		})
	}
	return tables, nil
}
