package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/StNick/squash-team-challenge/internal/domain/matchup"
)

type MatchupRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]matchup.Matchup

	lockMu   sync.Mutex
	rowLocks map[int64]*sync.Mutex
}

func NewMatchupRepository(seed []matchup.Matchup) *MatchupRepository {
	r := &MatchupRepository{
		nextID:   1,
		items:    make(map[int64]matchup.Matchup),
		rowLocks: make(map[int64]*sync.Mutex),
	}
	for _, item := range seed {
		if item.ID >= r.nextID {
			r.nextID = item.ID + 1
		}
		r.items[item.ID] = item
	}
	return r
}

func (r *MatchupRepository) GetByID(_ context.Context, matchupID int64) (matchup.Matchup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchupID]
	return item, ok, nil
}

func (r *MatchupRepository) ListByTournament(_ context.Context, tournamentID int64) ([]matchup.Matchup, error) {
	return r.list(func(item matchup.Matchup) bool {
		return item.TournamentID == tournamentID
	}), nil
}

func (r *MatchupRepository) ListByTournamentWeek(_ context.Context, tournamentID int64, week int) ([]matchup.Matchup, error) {
	return r.list(func(item matchup.Matchup) bool {
		return item.TournamentID == tournamentID && item.Week == week
	}), nil
}

func (r *MatchupRepository) ListByTeam(_ context.Context, teamID int64) ([]matchup.Matchup, error) {
	return r.list(func(item matchup.Matchup) bool {
		return item.TeamAID == teamID || item.TeamBID == teamID
	}), nil
}

func (r *MatchupRepository) list(keep func(matchup.Matchup) bool) []matchup.Matchup {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchup.Matchup, 0, len(r.items))
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *MatchupRepository) Create(_ context.Context, item matchup.Matchup) (matchup.Matchup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item
	return item, nil
}

func (r *MatchupRepository) UpdateTotals(_ context.Context, matchupID int64, teamAScore, teamBScore int, isComplete bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[matchupID]
	if !ok {
		return nil
	}
	item.TeamAScore = teamAScore
	item.TeamBScore = teamBScore
	item.IsComplete = isComplete
	r.items[matchupID] = item
	return nil
}

// WithRecomputeLock serializes fn per matchup id with a keyed mutex,
// matching the advisory-lock behavior of the postgres repository.
func (r *MatchupRepository) WithRecomputeLock(ctx context.Context, matchupID int64, fn func(ctx context.Context) error) error {
	r.lockMu.Lock()
	rowLock, ok := r.rowLocks[matchupID]
	if !ok {
		rowLock = &sync.Mutex{}
		r.rowLocks[matchupID] = rowLock
	}
	r.lockMu.Unlock()

	rowLock.Lock()
	defer rowLock.Unlock()
	return fn(ctx)
}
