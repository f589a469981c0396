package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/StNick/squash-team-challenge/internal/domain/match"
	"github.com/StNick/squash-team-challenge/internal/domain/matchup"
	"github.com/StNick/squash-team-challenge/internal/domain/player"
	"github.com/StNick/squash-team-challenge/internal/domain/team"
)

// AggregationService rolls raw match scores up into handicap-adjusted
// matchup totals and team season totals. Every write path ends in a
// Recompute, so totals are always derived from the current match rows
// rather than maintained incrementally.
type AggregationService struct {
	teamRepo       team.Repository
	matchupRepo    matchup.Repository
	matchRepo      match.Repository
	playerRepo     player.Repository
	reserveRepo    player.ReserveRepository
	defaultWorkers int
	now            func() time.Time
}

type AggregationOption func(*AggregationService)

// WithDefaultRecomputeWorkers sets the pool size used when a bulk
// recompute request does not name one. Maps to RECOMPUTE_WORKERS.
func WithDefaultRecomputeWorkers(n int) AggregationOption {
	return func(s *AggregationService) {
		if n > 0 {
			s.defaultWorkers = n
		}
	}
}

func NewAggregationService(
	teamRepo team.Repository,
	matchupRepo matchup.Repository,
	matchRepo match.Repository,
	playerRepo player.Repository,
	reserveRepo player.ReserveRepository,
	opts ...AggregationOption,
) *AggregationService {
	s := &AggregationService{
		teamRepo:       teamRepo,
		matchupRepo:    matchupRepo,
		matchRepo:      matchRepo,
		playerRepo:     playerRepo,
		reserveRepo:    reserveRepo,
		defaultWorkers: defaultRecomputeWorkers,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitScore records the final raw scores for a match and recomputes its
// matchup. The public surface calls this exactly once per match: a match
// that already has both scores rejects the submission, and corrections go
// through CorrectScore on the admin surface.
func (s *AggregationService) SubmitScore(ctx context.Context, matchID int64, scoreA, scoreB int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.SubmitScore")
	defer span.End()

	m, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if m.IsScored() {
		return fmt.Errorf("%w: match=%d", ErrAlreadyScored, matchID)
	}
	return s.writeScores(ctx, m, scoreA, scoreB)
}

// CorrectScore overwrites the raw scores of an already-scored match. The
// original scoredAt timestamp is kept.
func (s *AggregationService) CorrectScore(ctx context.Context, matchID int64, scoreA, scoreB int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.CorrectScore")
	defer span.End()

	m, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return err
	}
	return s.writeScores(ctx, m, scoreA, scoreB)
}

func (s *AggregationService) writeScores(ctx context.Context, m match.Match, scoreA, scoreB int) error {
	if err := match.ValidateScore(scoreA); err != nil {
		return fmt.Errorf("%w: scoreA: %v", ErrInvalidInput, err)
	}
	if err := match.ValidateScore(scoreB); err != nil {
		return fmt.Errorf("%w: scoreB: %v", ErrInvalidInput, err)
	}

	// scoredAt is written once, on the first unscored -> scored transition.
	var scoredAt *time.Time
	if m.ScoredAt == nil {
		at := s.now().UTC()
		scoredAt = &at
	}
	if err := s.matchRepo.UpdateScores(ctx, m.ID, scoreA, scoreB, scoredAt); err != nil {
		return fmt.Errorf("update match scores: %w", err)
	}
	return s.Recompute(ctx, m.MatchupID)
}

// SetHandicap stores the handicap percentage for a match. When the match
// already has scores, the matchup is recomputed with the new adjustment.
func (s *AggregationService) SetHandicap(ctx context.Context, matchID int64, handicap int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.SetHandicap")
	defer span.End()

	if err := match.ValidateHandicap(handicap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	m, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if err := s.matchRepo.UpdateHandicap(ctx, matchID, handicap); err != nil {
		return fmt.Errorf("update match handicap: %w", err)
	}
	if !m.IsScored() {
		return nil
	}
	return s.Recompute(ctx, m.MatchupID)
}

// Recompute rebuilds one matchup's adjusted totals and both teams'
// season totals. Runs under the repository's per-matchup lock so two
// near-simultaneous submissions into the same matchup cannot overwrite
// each other's sums with stale reads.
func (s *AggregationService) Recompute(ctx context.Context, matchupID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.Recompute")
	defer span.End()

	err := s.matchupRepo.WithRecomputeLock(ctx, matchupID, func(ctx context.Context) error {
		return s.recomputeLocked(ctx, matchupID)
	})
	if err != nil {
		return fmt.Errorf("recompute matchup %d: %w", matchupID, err)
	}
	return nil
}

func (s *AggregationService) recomputeLocked(ctx context.Context, matchupID int64) error {
	mu, found, err := s.matchupRepo.GetByID(ctx, matchupID)
	if err != nil {
		return fmt.Errorf("get matchup: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: matchup=%d", ErrNotFound, matchupID)
	}

	matches, err := s.matchRepo.ListByMatchup(ctx, matchupID)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}

	// An empty matchup has nothing to complete; it stays incomplete with
	// zero totals until matches exist and are all scored.
	totalA, totalB := 0, 0
	isComplete := len(matches) > 0
	for _, m := range matches {
		if !m.IsScored() {
			isComplete = false
			continue
		}
		adjustedA, adjustedB := match.AdjustScores(*m.ScoreA, *m.ScoreB, m.Handicap)
		totalA += adjustedA
		totalB += adjustedB
	}

	if err := s.matchupRepo.UpdateTotals(ctx, matchupID, totalA, totalB, isComplete); err != nil {
		return fmt.Errorf("update matchup totals: %w", err)
	}

	if err := s.recomputeTeamTotal(ctx, mu.TeamAID); err != nil {
		return err
	}
	return s.recomputeTeamTotal(ctx, mu.TeamBID)
}

// recomputeTeamTotal re-sums a team's season total over every matchup it
// plays in, reading the freshly persisted matchup rows. The recompute
// lock covers one matchup id: when recomputes of two different matchups
// sharing a team overlap, the later re-sum can persist a total missing
// the other's write. RecomputeTournament re-derives every total and
// repairs any such drift.
func (s *AggregationService) recomputeTeamTotal(ctx context.Context, teamID int64) error {
	matchups, err := s.matchupRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("list matchups by team: %w", err)
	}

	total := 0
	for _, mu := range matchups {
		switch teamID {
		case mu.TeamAID:
			total += mu.TeamAScore
		case mu.TeamBID:
			total += mu.TeamBScore
		}
	}
	if err := s.teamRepo.UpdateTotalScore(ctx, teamID, total); err != nil {
		return fmt.Errorf("update team total: %w", err)
	}
	return nil
}

// HandicapSuggestion carries the suggested percentage plus the resolved
// levels it was derived from.
type HandicapSuggestion struct {
	Suggested int `json:"suggestedHandicap"`
	LevelA    int `json:"levelA"`
	LevelB    int `json:"levelB"`
}

// SuggestedHandicap resolves both sides of a match (substitute, custom
// guest, or rostered player) and returns half the level advantage as a
// non-negative 5-step percentage.
func (s *AggregationService) SuggestedHandicap(ctx context.Context, matchID int64) (HandicapSuggestion, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.SuggestedHandicap")
	defer span.End()

	m, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return HandicapSuggestion{}, err
	}

	sideA, err := s.resolveSide(ctx, m.PlayerAID, m.SubstituteA)
	if err != nil {
		return HandicapSuggestion{}, fmt.Errorf("resolve side A: %w", err)
	}
	sideB, err := s.resolveSide(ctx, m.PlayerBID, m.SubstituteB)
	if err != nil {
		return HandicapSuggestion{}, fmt.Errorf("resolve side B: %w", err)
	}

	return HandicapSuggestion{
		Suggested: match.SuggestedHandicap(sideA.Level, sideB.Level),
		LevelA:    sideA.Level,
		LevelB:    sideB.Level,
	}, nil
}

func (s *AggregationService) resolveSide(ctx context.Context, playerID int64, substitute match.Substitute) (match.Identity, error) {
	roster := match.Identity{}
	if playerID > 0 {
		p, found, err := s.playerRepo.GetByID(ctx, playerID)
		if err != nil {
			return match.Identity{}, fmt.Errorf("get player: %w", err)
		}
		if !found {
			return match.Identity{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
		}
		roster = match.Identity{Name: p.Name, Level: p.Level}
	}

	var lookupErr error
	identity, err := substitute.Resolve(roster, func(reserveID int64) (match.Identity, bool) {
		r, found, err := s.reserveRepo.GetByID(ctx, reserveID)
		if err != nil {
			lookupErr = fmt.Errorf("get reserve: %w", err)
			return match.Identity{}, false
		}
		if !found {
			return match.Identity{}, false
		}
		return match.Identity{Name: r.Name, Level: r.Level}, true
	})
	if lookupErr != nil {
		return match.Identity{}, lookupErr
	}
	if err != nil {
		return match.Identity{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return identity, nil
}

func (s *AggregationService) loadMatch(ctx context.Context, matchID int64) (match.Match, error) {
	if matchID <= 0 {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	m, found, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}
	return m, nil
}

// RecomputeTournamentResult reports a bulk recompute run.
type RecomputeTournamentResult struct {
	MatchupCount int   `json:"matchup_count"`
	SuccessCount int   `json:"success_count"`
	FailedCount  int   `json:"failed_count"`
	WorkerCount  int   `json:"worker_count"`
	DurationMs   int64 `json:"duration_ms"`
}

const defaultRecomputeWorkers = 4

// RecomputeTournament recomputes every matchup of a tournament on a
// worker pool. Used by the admin surface after bulk data fixes.
func (s *AggregationService) RecomputeTournament(ctx context.Context, tournamentID int64, maxWorkers int) (RecomputeTournamentResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.RecomputeTournament")
	defer span.End()

	if tournamentID <= 0 {
		return RecomputeTournamentResult{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	matchups, err := s.matchupRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return RecomputeTournamentResult{}, fmt.Errorf("list matchups by tournament: %w", err)
	}

	workerCount := maxWorkers
	if workerCount <= 0 {
		workerCount = s.defaultWorkers
	}
	if workerCount > len(matchups) {
		workerCount = len(matchups)
	}

	result := RecomputeTournamentResult{
		MatchupCount: len(matchups),
		WorkerCount:  workerCount,
	}
	if len(matchups) == 0 {
		return result, nil
	}

	start := s.now()
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeTournamentResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var successCount, failedCount atomic.Int32
	var workers sync.WaitGroup
	for _, mu := range matchups {
		matchupID := mu.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if err := s.Recompute(ctx, matchupID); err != nil {
				failedCount.Add(1)
				return
			}
			successCount.Add(1)
		}); err != nil {
			workers.Done()
			failedCount.Add(1)
		}
	}
	workers.Wait()

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.DurationMs = time.Since(start).Milliseconds()
	return result, nil
}
