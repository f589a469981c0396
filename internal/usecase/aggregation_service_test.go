package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/StNick/squash-team-challenge/internal/domain/match"
	"github.com/StNick/squash-team-challenge/internal/domain/matchup"
	"github.com/StNick/squash-team-challenge/internal/domain/player"
	"github.com/StNick/squash-team-challenge/internal/domain/team"
	"github.com/StNick/squash-team-challenge/internal/infrastructure/repository/memory"
)

type aggFixture struct {
	teams    *memory.TeamRepository
	matchups *memory.MatchupRepository
	matches  *memory.MatchRepository
	players  *memory.PlayerRepository
	reserves *memory.ReserveRepository
	svc      *AggregationService
}

var aggNow = time.Date(2026, time.April, 2, 20, 0, 0, 0, time.UTC)

// two teams, two weekly matchups; matchup 1 holds matches 7 and 8.
func newAggFixture(t *testing.T) aggFixture {
	t.Helper()

	f := aggFixture{
		teams: memory.NewTeamRepository([]team.Team{
			{ID: 1, TournamentID: 1, Name: "Red Dragons", Color: "red"},
			{ID: 2, TournamentID: 1, Name: "Blue Kings", Color: "blue"},
		}),
		matchups: memory.NewMatchupRepository([]matchup.Matchup{
			{ID: 1, TournamentID: 1, Week: 1, TeamAID: 1, TeamBID: 2},
			{ID: 2, TournamentID: 1, Week: 2, TeamAID: 2, TeamBID: 1},
		}),
		matches: memory.NewMatchRepository([]match.Match{
			{ID: 7, MatchupID: 1, Position: 1, PlayerAID: 1, PlayerBID: 3, Handicap: 10},
			{ID: 8, MatchupID: 1, Position: 2, PlayerAID: 2, PlayerBID: 4},
			{ID: 9, MatchupID: 2, Position: 1, PlayerAID: 3, PlayerBID: 1},
		}),
		players: memory.NewPlayerRepository([]player.Player{
			{ID: 1, TeamID: 1, Name: "Alice", Level: 62},
			{ID: 2, TeamID: 1, Name: "Maya", Level: 48},
			{ID: 3, TeamID: 2, Name: "Bob", Level: 55},
			{ID: 4, TeamID: 2, Name: "Tom", Level: 41},
		}),
		reserves: memory.NewReserveRepository([]player.Reserve{
			{ID: 1, TournamentID: 1, Name: "Jonas", Level: 90},
		}),
	}
	f.svc = NewAggregationService(f.teams, f.matchups, f.matches, f.players, f.reserves)
	f.svc.now = func() time.Time { return aggNow }
	return f
}

func (f aggFixture) matchupByID(t *testing.T, id int64) matchup.Matchup {
	t.Helper()
	mu, found, err := f.matchups.GetByID(context.Background(), id)
	if err != nil || !found {
		t.Fatalf("matchup %d: found=%v err=%v", id, found, err)
	}
	return mu
}

func (f aggFixture) teamByID(t *testing.T, id int64) team.Team {
	t.Helper()
	tm, found, err := f.teams.GetByID(context.Background(), id)
	if err != nil || !found {
		t.Fatalf("team %d: found=%v err=%v", id, found, err)
	}
	return tm
}

func TestSubmitScoreRecomputesMatchupAndTeams(t *testing.T) {
	t.Parallel()

	f := newAggFixture(t)
	ctx := context.Background()

	// handicap 10 discounts side A: round(11*0.9)=10.
	if err := f.svc.SubmitScore(ctx, 7, 11, 9); err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}

	mu := f.matchupByID(t, 1)
	if mu.TeamAScore != 10 || mu.TeamBScore != 9 {
		t.Fatalf("matchup totals = %d-%d, want 10-9", mu.TeamAScore, mu.TeamBScore)
	}
	if mu.IsComplete {
		t.Fatal("matchup complete with match 8 unscored")
	}
	if got := f.teamByID(t, 1).TotalScore; got != 10 {
		t.Fatalf("team 1 total = %d, want 10", got)
	}
	if got := f.teamByID(t, 2).TotalScore; got != 9 {
		t.Fatalf("team 2 total = %d, want 9", got)
	}

	m, _, _ := f.matches.GetByID(ctx, 7)
	if m.ScoredAt == nil || !m.ScoredAt.Equal(aggNow) {
		t.Fatalf("scoredAt = %v, want %v", m.ScoredAt, aggNow)
	}
}

func TestSubmitScoreCompletesMatchup(t *testing.T) {
	t.Parallel()

	f := newAggFixture(t)
	ctx := context.Background()

	if err := f.svc.SubmitScore(ctx, 7, 11, 9); err != nil {
		t.Fatalf("SubmitScore 7: %v", err)
	}
	if err := f.svc.SubmitScore(ctx, 8, 4, 11); err != nil {
		t.Fatalf("SubmitScore 8: %v", err)
	}

	mu := f.matchupByID(t, 1)
	if !mu.IsComplete {
		t.Fatal("matchup not complete after all matches scored")
	}
	if mu.TeamAScore != 14 || mu.TeamBScore != 20 {
		t.Fatalf("matchup totals = %d-%d, want 14-20", mu.TeamAScore, mu.TeamBScore)
	}
}

func TestSubmitScoreRejectsResubmission(t *testing.T) {
	t.Parallel()

	f := newAggFixture(t)
	ctx := context.Background()

	if err := f.svc.SubmitScore(ctx, 7, 11, 9); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	err := f.svc.SubmitScore(ctx, 7, 2, 2)
	if !errors.Is(err, ErrAlreadyScored) {
		t.Fatalf("second submit = %v, want ErrAlreadyScored", err)
	}

	mu := f.matchupByID(t, 1)
	if mu.TeamAScore != 10 || mu.TeamBScore != 9 {
		t.Fatalf("totals changed by rejected submit: %d-%d", mu.TeamAScore, mu.TeamBScore)
	}
}

func TestSubmitScoreValidatesRange(t *testing.T) {
	t.Parallel()

	f := newAggFixture(t)
	ctx := context.Background()

	for _, pair := range [][2]int{{-1, 5}, {5, -1}, {1000, 5}, {5, 1000}} {
		err := f.svc.SubmitScore(ctx, 7, pair[0], pair[1])
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("SubmitScore(%v) = %v, want ErrInvalidInput", pair, err)
		}
	}

	m, _, _ := f.matches.GetByID(ctx, 7)
	if m.IsScored() || m.ScoredAt != nil {
		t.Fatal("rejected submit left partial state on the match")
	}
	if mu := f.matchupByID(t, 1); mu.TeamAScore != 0 || mu.TeamBScore != 0 {
		t.Fatal("rejected submit changed matchup totals")
	}
}

func TestSubmitScoreUnknownMatch(t *testing.T) {
	t.Parallel()

	f := newAggFixture(t)
	if err := f.svc.SubmitScore(context.Background(), 999, 1, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SubmitScore(999) = %v, want ErrNotFound", err)
	}
}

func TestCorrectScoreKeepsOriginalScoredAt(t *testing.T) {
	t.Parallel()

	f := newAggFixture(t)
	ctx := context.Background()

	if err := f.svc.SubmitScore(ctx, 7, 11, 9); err != nil {
		t.Fatalf("submit: %v", err)
	}

	f.svc.now = func() time.Time { return aggNow.Add(time.Hour) }
	if err := f.svc.CorrectScore(ctx, 7, 11, 13); err != nil {
		t.Fatalf("CorrectScore: %v", err)
	}

	m, _, _ := f.matches.GetByID(ctx, 7)
	if m.ScoredAt == nil || !m.ScoredAt.Equal(aggNow) {
		t.Fatalf("scoredAt rewritten by correction: %v", m.ScoredAt)
	}
	if mu := f.matchupByID(t, 1); mu.TeamBScore != 13 {
		t.Fatalf("corrected totals = %d-%d", mu.TeamAScore, mu.TeamBScore)
	}
}

func TestSetHandicapRecomputesScoredMatch(t *testing.T) {
	t.Parallel()

	f := newAggFixture(t)
	ctx := context.Background()

	if err := f.svc.SubmitScore(ctx, 8, 10, 5); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if mu := f.matchupByID(t, 1); mu.TeamAScore != 10 {
		t.Fatalf("pre-handicap totals = %d", mu.TeamAScore)
	}

	if err := f.svc.SetHandicap(ctx, 8, 20); err != nil {
		t.Fatalf("SetHandicap: %v", err)
	}
	if mu := f.matchupByID(t, 1); mu.TeamAScore != 8 || mu.TeamBScore != 5 {
		t.Fatalf("post-handicap totals = %d-%d, want 8-5", mu.TeamAScore, mu.TeamBScore)
	}

	if err := f.svc.SetHandicap(ctx, 8, 51); !errors.Is(err, ErrInvalidInput) {
		t.Fatal("out-of-range handicap accepted")
	}
}

func TestSetHandicapBeforeScores(t *testing.T) {
	t.Parallel()

	f := newAggFixture(t)
	ctx := context.Background()

	if err := f.svc.SetHandicap(ctx, 8, -15); err != nil {
		t.Fatalf("SetHandicap: %v", err)
	}
	m, _, _ := f.matches.GetByID(ctx, 8)
	if m.Handicap != -15 {
		t.Fatalf("handicap = %d, want -15", m.Handicap)
	}
	if mu := f.matchupByID(t, 1); mu.TeamAScore != 0 || mu.TeamBScore != 0 {
		t.Fatal("totals changed without scores")
	}
}

func TestSeasonTotalsSpanMatchups(t *testing.T) {
	t.Parallel()

	f := newAggFixture(t)
	ctx := context.Background()

	if err := f.svc.SubmitScore(ctx, 7, 11, 9); err != nil {
		t.Fatalf("submit week 1: %v", err)
	}
	// matchup 2 swaps sides: team 2 is A, team 1 is B.
	if err := f.svc.SubmitScore(ctx, 9, 6, 11); err != nil {
		t.Fatalf("submit week 2: %v", err)
	}

	if got := f.teamByID(t, 1).TotalScore; got != 21 {
		t.Fatalf("team 1 season total = %d, want 21", got)
	}
	if got := f.teamByID(t, 2).TotalScore; got != 15 {
		t.Fatalf("team 2 season total = %d, want 15", got)
	}
}

func TestRecomputeEmptyMatchupStaysIncomplete(t *testing.T) {
	t.Parallel()

	f := newAggFixture(t)
	ctx := context.Background()

	empty, err := f.matchups.Create(ctx, matchup.Matchup{TournamentID: 1, Week: 3, TeamAID: 1, TeamBID: 2})
	if err != nil {
		t.Fatalf("create matchup: %v", err)
	}
	if err := f.svc.Recompute(ctx, empty.ID); err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if mu := f.matchupByID(t, empty.ID); mu.IsComplete {
		t.Fatal("empty matchup marked complete")
	}
}

func TestSuggestedHandicapResolvesSides(t *testing.T) {
	t.Parallel()

	f := newAggFixture(t)
	ctx := context.Background()

	// rostered players: Alice 62 vs Bob 55, gap 7, half 3.5 -> 5.
	got, err := f.svc.SuggestedHandicap(ctx, 7)
	if err != nil {
		t.Fatalf("SuggestedHandicap: %v", err)
	}
	if got.Suggested != 5 || got.LevelA != 62 || got.LevelB != 55 {
		t.Fatalf("roster suggestion = %+v", got)
	}

	// side B replaced by the level-90 reserve: gap 28, half 14 -> 15.
	withReserve, err := f.matches.Create(ctx, match.Match{
		MatchupID: 1, Position: 3, PlayerAID: 1, PlayerBID: 3,
		SubstituteB: match.Substitute{Kind: match.SubstituteReserve, ReserveID: 1},
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	got, err = f.svc.SuggestedHandicap(ctx, withReserve.ID)
	if err != nil {
		t.Fatalf("SuggestedHandicap reserve: %v", err)
	}
	if got.Suggested != 15 || got.LevelB != 90 {
		t.Fatalf("reserve suggestion = %+v", got)
	}

	// custom guest on side A.
	withGuest, err := f.matches.Create(ctx, match.Match{
		MatchupID: 1, Position: 4, PlayerAID: 1, PlayerBID: 3,
		SubstituteA: match.Substitute{Kind: match.SubstituteCustom, CustomName: "Guest", CustomLevel: 35},
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	got, err = f.svc.SuggestedHandicap(ctx, withGuest.ID)
	if err != nil {
		t.Fatalf("SuggestedHandicap custom: %v", err)
	}
	if got.LevelA != 35 || got.Suggested != 10 {
		t.Fatalf("custom suggestion = %+v", got)
	}

	// missing reserve reference.
	broken, err := f.matches.Create(ctx, match.Match{
		MatchupID: 1, Position: 5, PlayerAID: 1, PlayerBID: 3,
		SubstituteB: match.Substitute{Kind: match.SubstituteReserve, ReserveID: 404},
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if _, err := f.svc.SuggestedHandicap(ctx, broken.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing reserve = %v, want ErrNotFound", err)
	}
}

func TestRecomputeTournament(t *testing.T) {
	t.Parallel()

	f := newAggFixture(t)
	ctx := context.Background()

	if err := f.svc.SubmitScore(ctx, 7, 11, 9); err != nil {
		t.Fatalf("submit: %v", err)
	}
	// A stale total that the bulk recompute must fix.
	if err := f.matchups.UpdateTotals(ctx, 1, 99, 99, true); err != nil {
		t.Fatalf("seed stale totals: %v", err)
	}

	result, err := f.svc.RecomputeTournament(ctx, 1, 2)
	if err != nil {
		t.Fatalf("RecomputeTournament: %v", err)
	}
	if result.MatchupCount != 2 || result.SuccessCount != 2 || result.FailedCount != 0 {
		t.Fatalf("result = %+v", result)
	}

	mu := f.matchupByID(t, 1)
	if mu.TeamAScore != 10 || mu.TeamBScore != 9 || mu.IsComplete {
		t.Fatalf("stale totals not rebuilt: %+v", mu)
	}
}

func TestRecomputeTournament_ConfiguredWorkerDefault(t *testing.T) {
	t.Parallel()

	f := newAggFixture(t)
	svc := NewAggregationService(f.teams, f.matchups, f.matches, f.players, f.reserves,
		WithDefaultRecomputeWorkers(1))

	// No worker count in the request: the configured default applies.
	result, err := svc.RecomputeTournament(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("RecomputeTournament: %v", err)
	}
	if result.WorkerCount != 1 {
		t.Fatalf("WorkerCount = %d, want configured default 1", result.WorkerCount)
	}

	// An explicit request value still wins over the configured default.
	result, err = svc.RecomputeTournament(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("RecomputeTournament: %v", err)
	}
	if result.WorkerCount != 2 {
		t.Fatalf("WorkerCount = %d, want requested 2", result.WorkerCount)
	}
}
