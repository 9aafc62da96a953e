package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jprn/FootTour/brackets"
	"github.com/jprn/FootTour/models"
	"github.com/jprn/FootTour/repositories"
	"golang.org/x/sync/errgroup"
)

// GroupRecommendation is the partitioning hint shown to the operator
// before a group draw: a suggested count plus the valid range.
type GroupRecommendation struct {
	TeamCount   int `json:"team_count"`
	MinGroups   int `json:"min_groups"`
	MaxGroups   int `json:"max_groups"`
	Recommended int `json:"recommended"`
}

// RankedTeam is one line of the terminal tournament ranking.
type RankedTeam struct {
	Rank int          `json:"rank"`
	Team *models.Team `json:"team"`
}

// ScheduleService coordinates the scheduling engine against persisted
// state. Generation follows a propose/commit two-phase flow: proposals
// are pure previews, commits persist exactly what was previewed. A
// failed commit leaves no engine-side state; the caller re-reads and
// retries.
type ScheduleService interface {
	Plan(ctx context.Context, tournamentID int) (*brackets.Plan, error)

	RecommendGroups(ctx context.Context, tournamentID int) (*GroupRecommendation, error)
	ProposeGroups(ctx context.Context, tournamentID, currentUserID, groupCount int) (*brackets.GroupDraw, error)
	// CommitGroups persists a draw. This is the destructive regeneration
	// step: all groups and matches of the tournament are discarded
	// first. Refused once any group result exists or the final stage is
	// set up.
	CommitGroups(ctx context.Context, tournamentID, currentUserID int, draw *brackets.GroupDraw) error

	GenerateGroupFixtures(ctx context.Context, tournamentID, currentUserID int) ([]*models.Match, error)

	QualifierOptions(ctx context.Context, tournamentID int) ([]int, error)
	ProposeKnockout(ctx context.Context, tournamentID, currentUserID, qualifiersPerGroup int) (*brackets.KnockoutProposal, error)
	CommitKnockout(ctx context.Context, tournamentID, currentUserID int, proposal *brackets.KnockoutProposal) ([]*models.Match, error)

	ProposeNextStage(ctx context.Context, tournamentID, currentUserID int) (*brackets.StageProposal, error)
	CommitNextStage(ctx context.Context, tournamentID, currentUserID int, proposal *brackets.StageProposal) ([]*models.Match, error)

	FinalRanking(ctx context.Context, tournamentID int) ([]RankedTeam, error)
}

type scheduleService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	groupRepo      repositories.GroupRepository
	matchRepo      repositories.MatchRepository
	standings      StandingsService
	hub            *brackets.Hub
	logger         *slog.Logger
}

func NewScheduleService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	groupRepo repositories.GroupRepository,
	matchRepo repositories.MatchRepository,
	standings StandingsService,
	hub *brackets.Hub,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		groupRepo:      groupRepo,
		matchRepo:      matchRepo,
		standings:      standings,
		hub:            hub,
		logger:         logger,
	}
}

type snapshot struct {
	tournament *models.Tournament
	teams      []*models.Team
	groups     []*models.Group
	matches    []*models.Match
}

func (s *scheduleService) loadSnapshot(ctx context.Context, tournamentID int) (*snapshot, error) {
	snap := &snapshot{}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gCtx, tournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to fetch tournament %d: %w", tournamentID, err)
		}
		snap.tournament = t
		return nil
	})
	g.Go(func() error {
		var err error
		snap.teams, err = s.teamRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.groups, err = s.groupRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.matches, err = s.matchRepo.ListByTournament(gCtx, tournamentID, repositories.MatchFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (snap *snapshot) engineSnapshot() brackets.Snapshot {
	matches := make([]models.Match, len(snap.matches))
	for i, m := range snap.matches {
		matches[i] = *m
	}
	return brackets.Snapshot{
		Format:     snap.tournament.Format,
		TeamCount:  len(snap.teams),
		GroupCount: len(snap.groups),
		Matches:    matches,
	}
}

func (snap *snapshot) knockoutMatches() []models.Match {
	var out []models.Match
	for _, m := range snap.matches {
		if m.IsKnockout() {
			out = append(out, *m)
		}
	}
	return out
}

func (snap *snapshot) teamValues() []models.Team {
	out := make([]models.Team, len(snap.teams))
	for i, t := range snap.teams {
		out[i] = *t
	}
	return out
}

func (s *scheduleService) Plan(ctx context.Context, tournamentID int) (*brackets.Plan, error) {
	snap, err := s.loadSnapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	plan := brackets.PlanNext(snap.engineSnapshot())
	return &plan, nil
}

func (s *scheduleService) RecommendGroups(ctx context.Context, tournamentID int) (*GroupRecommendation, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	maxGroups := brackets.MaxGroupCount
	if len(teams) < maxGroups {
		maxGroups = len(teams)
	}
	return &GroupRecommendation{
		TeamCount:   len(teams),
		MinGroups:   brackets.MinGroupCount,
		MaxGroups:   maxGroups,
		Recommended: brackets.RecommendGroupCount(len(teams), brackets.MaxGroupCount),
	}, nil
}

func (s *scheduleService) ProposeGroups(ctx context.Context, tournamentID, currentUserID, groupCount int) (*brackets.GroupDraw, error) {
	snap, err := s.loadSnapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if snap.tournament.OwnerID != currentUserID {
		return nil, ErrForbiddenOperation
	}
	if !brackets.PlanNext(snap.engineSnapshot()).RegenerationAllowed {
		return nil, ErrRegenerationBlocked
	}
	return brackets.ProposeGroups(snap.teamValues(), groupCount)
}

func (s *scheduleService) CommitGroups(ctx context.Context, tournamentID, currentUserID int, draw *brackets.GroupDraw) error {
	snap, err := s.loadSnapshot(ctx, tournamentID)
	if err != nil {
		return err
	}
	if snap.tournament.OwnerID != currentUserID {
		return ErrForbiddenOperation
	}
	// Re-check against current state: the precondition may have changed
	// since the proposal was produced.
	if !brackets.PlanNext(snap.engineSnapshot()).RegenerationAllowed {
		return ErrRegenerationBlocked
	}

	// Destructive step: wipe fixtures, assignments and groups, then
	// recreate from the draw. Not atomic across the individual writes;
	// on failure the caller re-reads state and retries the whole run.
	if err := s.matchRepo.DeleteByTournament(ctx, tournamentID, repositories.ScopeAll); err != nil {
		return fmt.Errorf("failed to clear matches: %w", err)
	}
	if err := s.teamRepo.ResetGroups(ctx, tournamentID); err != nil {
		return fmt.Errorf("failed to reset team groups: %w", err)
	}
	if err := s.groupRepo.DeleteByTournament(ctx, tournamentID); err != nil {
		return fmt.Errorf("failed to clear groups: %w", err)
	}

	groups := make([]*models.Group, len(draw.Groups))
	for i, seed := range draw.Groups {
		groups[i] = &models.Group{TournamentID: tournamentID, Name: seed.Name}
	}
	if err := s.groupRepo.CreateBatch(ctx, groups); err != nil {
		return fmt.Errorf("failed to create groups: %w", err)
	}
	for i, seed := range draw.Groups {
		for _, team := range seed.Teams {
			if err := s.teamRepo.AssignGroup(ctx, team.ID, groups[i].ID); err != nil {
				return fmt.Errorf("failed to assign team %d to group %s: %w", team.ID, seed.Name, err)
			}
		}
	}

	s.logger.Info("groups committed",
		slog.Int("tournament_id", tournamentID),
		slog.Int("group_count", len(groups)))
	s.hub.Broadcast(brackets.Event{
		Type:         brackets.EventScheduleGenerated,
		TournamentID: tournamentID,
	})
	return nil
}

func (s *scheduleService) GenerateGroupFixtures(ctx context.Context, tournamentID, currentUserID int) ([]*models.Match, error) {
	snap, err := s.loadSnapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if snap.tournament.OwnerID != currentUserID {
		return nil, ErrForbiddenOperation
	}
	if len(snap.groups) == 0 {
		return nil, fmt.Errorf("%w: no groups to schedule", ErrActionNotAvailable)
	}
	if len(snap.matches) > 0 {
		return nil, fmt.Errorf("%w: fixtures already exist", ErrActionNotAvailable)
	}

	teamsByGroup := make(map[int][]models.Team)
	for _, t := range snap.teams {
		if t.GroupID != nil {
			teamsByGroup[*t.GroupID] = append(teamsByGroup[*t.GroupID], *t)
		}
	}

	var toCreate []*models.Match
	for _, group := range snap.groups {
		fixtures := brackets.GenerateGroupFixtures(tournamentID, *group, teamsByGroup[group.ID])
		for i := range fixtures {
			toCreate = append(toCreate, &fixtures[i])
		}
	}
	if len(toCreate) == 0 {
		return nil, fmt.Errorf("%w: not enough teams in the groups", ErrActionNotAvailable)
	}

	if err := s.matchRepo.CreateBatch(ctx, toCreate); err != nil {
		return nil, fmt.Errorf("failed to create group fixtures: %w", err)
	}

	s.logger.Info("group fixtures generated",
		slog.Int("tournament_id", tournamentID),
		slog.Int("fixtures", len(toCreate)))
	s.hub.Broadcast(brackets.Event{
		Type:         brackets.EventScheduleGenerated,
		TournamentID: tournamentID,
	})
	return toCreate, nil
}

func (s *scheduleService) QualifierOptions(ctx context.Context, tournamentID int) ([]int, error) {
	tables, err := s.standings.TablesByGroup(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	rows := make([][]models.StandingRow, len(tables))
	for i, t := range tables {
		rows[i] = t.Rows
	}
	return brackets.QualifierOptions(rows), nil
}

func (s *scheduleService) ProposeKnockout(ctx context.Context, tournamentID, currentUserID, qualifiersPerGroup int) (*brackets.KnockoutProposal, error) {
	snap, err := s.loadSnapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if snap.tournament.OwnerID != currentUserID {
		return nil, ErrForbiddenOperation
	}

	if snap.tournament.Format == models.FormatKnockout {
		if len(snap.matches) > 0 {
			return nil, fmt.Errorf("%w: bracket already generated", ErrActionNotAvailable)
		}
		return brackets.ProposeInitialKnockout(tournamentID, snap.teamValues())
	}

	// Groups format: every group match must be finished and no knockout
	// stage may exist yet.
	if len(snap.knockoutMatches()) > 0 {
		return nil, fmt.Errorf("%w: knockout stage already exists", ErrActionNotAvailable)
	}
	groupMatches := 0
	for _, m := range snap.matches {
		if !m.IsKnockout() {
			groupMatches++
			if m.Status != models.MatchStatusFinished {
				return nil, ErrGroupMatchesUnfinished
			}
		}
	}
	if groupMatches == 0 {
		return nil, fmt.Errorf("%w: no group results to qualify from", ErrActionNotAvailable)
	}

	tables, err := s.standings.TablesByGroup(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	rows := make([][]models.StandingRow, len(tables))
	for i, t := range tables {
		rows[i] = t.Rows
	}
	return brackets.ProposeKnockoutFromStandings(tournamentID, rows, qualifiersPerGroup)
}

func (s *scheduleService) CommitKnockout(ctx context.Context, tournamentID, currentUserID int, proposal *brackets.KnockoutProposal) ([]*models.Match, error) {
	if proposal == nil || len(proposal.Pairings) == 0 {
		return nil, fmt.Errorf("%w: empty knockout proposal", ErrValidationFailed)
	}
	return s.commitFixtures(ctx, tournamentID, currentUserID, proposal.Matches(), brackets.EventScheduleGenerated)
}

func (s *scheduleService) ProposeNextStage(ctx context.Context, tournamentID, currentUserID int) (*brackets.StageProposal, error) {
	snap, err := s.loadSnapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if snap.tournament.OwnerID != currentUserID {
		return nil, ErrForbiddenOperation
	}

	stage, err := brackets.NextStage(tournamentID, snap.knockoutMatches(), snap.teamValues())
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, ErrActionNotAvailable
	}
	return stage, nil
}

func (s *scheduleService) CommitNextStage(ctx context.Context, tournamentID, currentUserID int, proposal *brackets.StageProposal) ([]*models.Match, error) {
	if proposal == nil || len(proposal.Pairings) == 0 {
		return nil, fmt.Errorf("%w: empty stage proposal", ErrValidationFailed)
	}

	// Recompute from current state and require the same step: guards
	// against double generation from two stale previews.
	snap, err := s.loadSnapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if snap.tournament.OwnerID != currentUserID {
		return nil, ErrForbiddenOperation
	}
	current, err := brackets.NextStage(tournamentID, snap.knockoutMatches(), snap.teamValues())
	if err != nil {
		return nil, err
	}
	if current == nil || current.Action != proposal.Action || current.RoundLabel != proposal.RoundLabel {
		return nil, ErrActionNotAvailable
	}

	return s.commitFixtures(ctx, tournamentID, currentUserID, proposal.Matches(), brackets.EventBracketAdvanced)
}

func (s *scheduleService) FinalRanking(ctx context.Context, tournamentID int) ([]RankedTeam, error) {
	snap, err := s.loadSnapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	ranking, err := brackets.FinalRanking(snap.knockoutMatches())
	if err != nil {
		return nil, err
	}

	byID := make(map[int]*models.Team, len(snap.teams))
	for _, t := range snap.teams {
		byID[t.ID] = t
	}
	out := make([]RankedTeam, 0, len(ranking))
	for _, r := range ranking {
		out = append(out, RankedTeam{Rank: r.Rank, Team: byID[r.TeamID]})
	}
	return out, nil
}

func (s *scheduleService) commitFixtures(ctx context.Context, tournamentID, currentUserID int, fixtures []models.Match, event string) ([]*models.Match, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OwnerID != currentUserID {
		return nil, ErrForbiddenOperation
	}

	toCreate := make([]*models.Match, len(fixtures))
	for i := range fixtures {
		fixtures[i].TournamentID = tournamentID
		toCreate[i] = &fixtures[i]
	}
	if err := s.matchRepo.CreateBatch(ctx, toCreate); err != nil {
		return nil, fmt.Errorf("failed to create fixtures: %w", err)
	}

	s.logger.Info("fixtures committed",
		slog.Int("tournament_id", tournamentID),
		slog.Int("fixtures", len(toCreate)),
		slog.String("round", fixtures[0].Round))
	s.hub.Broadcast(brackets.Event{
		Type:         event,
		TournamentID: tournamentID,
	})
	return toCreate, nil
}
