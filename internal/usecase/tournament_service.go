package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/StNick/squash-team-challenge/internal/domain/match"
	"github.com/StNick/squash-team-challenge/internal/domain/matchup"
	"github.com/StNick/squash-team-challenge/internal/domain/team"
	"github.com/StNick/squash-team-challenge/internal/domain/tournament"
)

// TournamentService serves the read surface (tournaments, matchups,
// matches, standings) and the thin admin create operations.
type TournamentService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	matchupRepo    matchup.Repository
	matchRepo      match.Repository
}

func NewTournamentService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	matchupRepo matchup.Repository,
	matchRepo match.Repository,
) *TournamentService {
	return &TournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchupRepo:    matchupRepo,
		matchRepo:      matchRepo,
	}
}

func (s *TournamentService) ListTournaments(ctx context.Context) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListTournaments")
	defer span.End()

	items, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return items, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, tournamentID int64) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.GetTournament")
	defer span.End()

	return s.requireTournament(ctx, tournamentID)
}

// TeamStanding is one row of the season table.
type TeamStanding struct {
	Rank       int    `json:"rank"`
	TeamID     int64  `json:"teamId"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	TotalScore int    `json:"totalScore"`
}

// Standings lists a tournament's teams ordered by season total, name as
// the tiebreak. Teams with equal totals share a rank.
func (s *TournamentService) Standings(ctx context.Context, tournamentID int64) ([]TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Standings")
	defer span.End()

	if _, err := s.requireTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list teams by tournament: %w", err)
	}

	sort.Slice(teams, func(i, j int) bool {
		if teams[i].TotalScore != teams[j].TotalScore {
			return teams[i].TotalScore > teams[j].TotalScore
		}
		return teams[i].Name < teams[j].Name
	})

	standings := make([]TeamStanding, 0, len(teams))
	for i, t := range teams {
		rank := i + 1
		if i > 0 && t.TotalScore == teams[i-1].TotalScore {
			rank = standings[i-1].Rank
		}
		standings = append(standings, TeamStanding{
			Rank:       rank,
			TeamID:     t.ID,
			Name:       t.Name,
			Color:      t.Color,
			TotalScore: t.TotalScore,
		})
	}
	return standings, nil
}

// MatchupsByWeek lists a tournament's matchups, narrowed to one week when
// week > 0.
func (s *TournamentService) MatchupsByWeek(ctx context.Context, tournamentID int64, week int) ([]matchup.Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.MatchupsByWeek")
	defer span.End()

	if _, err := s.requireTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	if week > 0 {
		items, err := s.matchupRepo.ListByTournamentWeek(ctx, tournamentID, week)
		if err != nil {
			return nil, fmt.Errorf("list matchups by week: %w", err)
		}
		return items, nil
	}
	items, err := s.matchupRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list matchups by tournament: %w", err)
	}
	return items, nil
}

func (s *TournamentService) MatchesByMatchup(ctx context.Context, matchupID int64) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.MatchesByMatchup")
	defer span.End()

	if matchupID <= 0 {
		return nil, fmt.Errorf("%w: matchup id is required", ErrInvalidInput)
	}
	if _, found, err := s.matchupRepo.GetByID(ctx, matchupID); err != nil {
		return nil, fmt.Errorf("get matchup: %w", err)
	} else if !found {
		return nil, fmt.Errorf("%w: matchup=%d", ErrNotFound, matchupID)
	}

	items, err := s.matchRepo.ListByMatchup(ctx, matchupID)
	if err != nil {
		return nil, fmt.Errorf("list matches by matchup: %w", err)
	}
	return items, nil
}

func (s *TournamentService) CreateTournament(ctx context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.CreateTournament")
	defer span.End()

	if err := item.Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	created, err := s.tournamentRepo.Create(ctx, item)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("create tournament: %w", err)
	}
	return created, nil
}

func (s *TournamentService) CreateTeam(ctx context.Context, item team.Team) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.CreateTeam")
	defer span.End()

	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := s.requireTournament(ctx, item.TournamentID); err != nil {
		return team.Team{}, err
	}
	created, err := s.teamRepo.Create(ctx, item)
	if err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	return created, nil
}

func (s *TournamentService) CreateMatchup(ctx context.Context, item matchup.Matchup) (matchup.Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.CreateMatchup")
	defer span.End()

	if err := item.Validate(); err != nil {
		return matchup.Matchup{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := s.requireTournament(ctx, item.TournamentID); err != nil {
		return matchup.Matchup{}, err
	}
	for _, teamID := range []int64{item.TeamAID, item.TeamBID} {
		if _, found, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			return matchup.Matchup{}, fmt.Errorf("get team: %w", err)
		} else if !found {
			return matchup.Matchup{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
		}
	}
	created, err := s.matchupRepo.Create(ctx, item)
	if err != nil {
		return matchup.Matchup{}, fmt.Errorf("create matchup: %w", err)
	}
	return created, nil
}

func (s *TournamentService) CreateMatch(ctx context.Context, item match.Match) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.CreateMatch")
	defer span.End()

	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, found, err := s.matchupRepo.GetByID(ctx, item.MatchupID); err != nil {
		return match.Match{}, fmt.Errorf("get matchup: %w", err)
	} else if !found {
		return match.Match{}, fmt.Errorf("%w: matchup=%d", ErrNotFound, item.MatchupID)
	}
	created, err := s.matchRepo.Create(ctx, item)
	if err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}
	return created, nil
}

func (s *TournamentService) requireTournament(ctx context.Context, tournamentID int64) (tournament.Tournament, error) {
	if tournamentID <= 0 {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	t, found, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !found {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%d", ErrNotFound, tournamentID)
	}
	return t, nil
}
