package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/StNick/squash-team-challenge/internal/domain/match"
	"github.com/StNick/squash-team-challenge/internal/domain/matchup"
	"github.com/StNick/squash-team-challenge/internal/domain/team"
	"github.com/StNick/squash-team-challenge/internal/domain/tournament"
	"github.com/StNick/squash-team-challenge/internal/infrastructure/repository/memory"
)

func newTournamentFixture(t *testing.T) *TournamentService {
	t.Helper()

	tournaments := memory.NewTournamentRepository([]tournament.Tournament{
		{ID: 1, Name: "Club Team Challenge", Season: "2026", CurrentWeek: 2, WeekCount: 10},
	})
	teams := memory.NewTeamRepository([]team.Team{
		{ID: 1, TournamentID: 1, Name: "Red Dragons", Color: "red", TotalScore: 40},
		{ID: 2, TournamentID: 1, Name: "Blue Kings", Color: "blue", TotalScore: 55},
		{ID: 3, TournamentID: 1, Name: "Green Vipers", Color: "green", TotalScore: 40},
	})
	matchups := memory.NewMatchupRepository([]matchup.Matchup{
		{ID: 1, TournamentID: 1, Week: 1, TeamAID: 1, TeamBID: 2},
		{ID: 2, TournamentID: 1, Week: 2, TeamAID: 2, TeamBID: 3},
	})
	matches := memory.NewMatchRepository([]match.Match{
		{ID: 1, MatchupID: 1, Position: 1, PlayerAID: 1, PlayerBID: 2},
	})
	return NewTournamentService(tournaments, teams, matchups, matches)
}

func TestStandingsOrderAndRanks(t *testing.T) {
	t.Parallel()

	svc := newTournamentFixture(t)
	standings, err := svc.Standings(context.Background(), 1)
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	if len(standings) != 3 {
		t.Fatalf("len = %d, want 3", len(standings))
	}

	if standings[0].Name != "Blue Kings" || standings[0].Rank != 1 {
		t.Fatalf("first = %+v", standings[0])
	}
	// tied totals share a rank, name breaks the display order.
	if standings[1].Name != "Green Vipers" || standings[1].Rank != 2 {
		t.Fatalf("second = %+v", standings[1])
	}
	if standings[2].Name != "Red Dragons" || standings[2].Rank != 2 {
		t.Fatalf("third = %+v", standings[2])
	}
}

func TestStandingsUnknownTournament(t *testing.T) {
	t.Parallel()

	svc := newTournamentFixture(t)
	if _, err := svc.Standings(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Standings(99) = %v, want ErrNotFound", err)
	}
}

func TestMatchupsByWeek(t *testing.T) {
	t.Parallel()

	svc := newTournamentFixture(t)
	ctx := context.Background()

	all, err := svc.MatchupsByWeek(ctx, 1, 0)
	if err != nil {
		t.Fatalf("all weeks: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all weeks len = %d, want 2", len(all))
	}

	week2, err := svc.MatchupsByWeek(ctx, 1, 2)
	if err != nil {
		t.Fatalf("week 2: %v", err)
	}
	if len(week2) != 1 || week2[0].ID != 2 {
		t.Fatalf("week 2 = %+v", week2)
	}
}

func TestMatchesByMatchup(t *testing.T) {
	t.Parallel()

	svc := newTournamentFixture(t)
	ctx := context.Background()

	matches, err := svc.MatchesByMatchup(ctx, 1)
	if err != nil {
		t.Fatalf("MatchesByMatchup: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != 1 {
		t.Fatalf("matches = %+v", matches)
	}

	if _, err := svc.MatchesByMatchup(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown matchup = %v, want ErrNotFound", err)
	}
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	svc := newTournamentFixture(t)
	ctx := context.Background()

	if _, err := svc.CreateTournament(ctx, tournament.Tournament{Name: " ", WeekCount: 10}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank name accepted: %v", err)
	}
	if _, err := svc.CreateTeam(ctx, team.Team{TournamentID: 99, Name: "Ghosts"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("team in unknown tournament: %v", err)
	}
	if _, err := svc.CreateMatchup(ctx, matchup.Matchup{TournamentID: 1, Week: 3, TeamAID: 1, TeamBID: 1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("self-matchup accepted: %v", err)
	}
	if _, err := svc.CreateMatch(ctx, match.Match{MatchupID: 99, Position: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("match in unknown matchup: %v", err)
	}

	created, err := svc.CreateMatchup(ctx, matchup.Matchup{TournamentID: 1, Week: 3, TeamAID: 1, TeamBID: 3})
	if err != nil {
		t.Fatalf("CreateMatchup: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created matchup has no id")
	}
}
