package usecase

import (
	"context"
	"fmt"

	"github.com/StNick/squash-team-challenge/internal/domain/player"
	"github.com/StNick/squash-team-challenge/internal/domain/team"
)

// RosterService is the admin surface for players and reserves.
type RosterService struct {
	teamRepo    team.Repository
	playerRepo  player.Repository
	reserveRepo player.ReserveRepository
}

func NewRosterService(teamRepo team.Repository, playerRepo player.Repository, reserveRepo player.ReserveRepository) *RosterService {
	return &RosterService{
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		reserveRepo: reserveRepo,
	}
}

// TeamRoster is a team with its rostered players.
type TeamRoster struct {
	Team    team.Team       `json:"team"`
	Players []player.Player `json:"players"`
}

func (s *RosterService) GetTeamRoster(ctx context.Context, teamID int64) (TeamRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetTeamRoster")
	defer span.End()

	t, err := s.requireTeam(ctx, teamID)
	if err != nil {
		return TeamRoster{}, err
	}
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return TeamRoster{}, fmt.Errorf("list players by team: %w", err)
	}
	return TeamRoster{Team: t, Players: players}, nil
}

// ListTournamentRosters returns every team of a tournament with its
// players.
func (s *RosterService) ListTournamentRosters(ctx context.Context, tournamentID int64) ([]TeamRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListTournamentRosters")
	defer span.End()

	if tournamentID <= 0 {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list teams by tournament: %w", err)
	}

	rosters := make([]TeamRoster, 0, len(teams))
	for _, t := range teams {
		players, err := s.playerRepo.ListByTeam(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("list players by team: %w", err)
		}
		rosters = append(rosters, TeamRoster{Team: t, Players: players})
	}
	return rosters, nil
}

func (s *RosterService) CreatePlayer(ctx context.Context, item player.Player) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CreatePlayer")
	defer span.End()

	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := s.requireTeam(ctx, item.TeamID); err != nil {
		return player.Player{}, err
	}
	created, err := s.playerRepo.Create(ctx, item)
	if err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	return created, nil
}

func (s *RosterService) UpdatePlayer(ctx context.Context, item player.Player) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.UpdatePlayer")
	defer span.End()

	if item.ID <= 0 {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	existing, found, err := s.playerRepo.GetByID(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: player=%d", ErrNotFound, item.ID)
	}
	// Players do not move between teams through updates.
	if item.TeamID == 0 {
		item.TeamID = existing.TeamID
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Update(ctx, item); err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	return nil
}

func (s *RosterService) DeletePlayer(ctx context.Context, playerID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DeletePlayer")
	defer span.End()

	if playerID <= 0 {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if _, found, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return fmt.Errorf("get player: %w", err)
	} else if !found {
		return fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	if err := s.playerRepo.Delete(ctx, playerID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

func (s *RosterService) ListReserves(ctx context.Context, tournamentID int64) ([]player.Reserve, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListReserves")
	defer span.End()

	if tournamentID <= 0 {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	items, err := s.reserveRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list reserves: %w", err)
	}
	return items, nil
}

func (s *RosterService) CreateReserve(ctx context.Context, item player.Reserve) (player.Reserve, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CreateReserve")
	defer span.End()

	if err := item.Validate(); err != nil {
		return player.Reserve{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	created, err := s.reserveRepo.Create(ctx, item)
	if err != nil {
		return player.Reserve{}, fmt.Errorf("create reserve: %w", err)
	}
	return created, nil
}

func (s *RosterService) UpdateReserve(ctx context.Context, item player.Reserve) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.UpdateReserve")
	defer span.End()

	if item.ID <= 0 {
		return fmt.Errorf("%w: reserve id is required", ErrInvalidInput)
	}
	existing, found, err := s.reserveRepo.GetByID(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("get reserve: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: reserve=%d", ErrNotFound, item.ID)
	}
	if item.TournamentID == 0 {
		item.TournamentID = existing.TournamentID
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.reserveRepo.Update(ctx, item); err != nil {
		return fmt.Errorf("update reserve: %w", err)
	}
	return nil
}

func (s *RosterService) DeleteReserve(ctx context.Context, reserveID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DeleteReserve")
	defer span.End()

	if reserveID <= 0 {
		return fmt.Errorf("%w: reserve id is required", ErrInvalidInput)
	}
	if _, found, err := s.reserveRepo.GetByID(ctx, reserveID); err != nil {
		return fmt.Errorf("get reserve: %w", err)
	} else if !found {
		return fmt.Errorf("%w: reserve=%d", ErrNotFound, reserveID)
	}
	if err := s.reserveRepo.Delete(ctx, reserveID); err != nil {
		return fmt.Errorf("delete reserve: %w", err)
	}
	return nil
}

func (s *RosterService) requireTeam(ctx context.Context, teamID int64) (team.Team, error) {
	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	t, found, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}
	return t, nil
}
