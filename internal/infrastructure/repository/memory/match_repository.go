package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/StNick/squash-team-challenge/internal/domain/match"
)

type MatchRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]match.Match
}

func NewMatchRepository(seed []match.Match) *MatchRepository {
	r := &MatchRepository{
		nextID: 1,
		items:  make(map[int64]match.Match),
	}
	for _, item := range seed {
		if item.ID >= r.nextID {
			r.nextID = item.ID + 1
		}
		r.items[item.ID] = item
	}
	return r
}

func (r *MatchRepository) GetByID(_ context.Context, matchID int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchID]
	return item, ok, nil
}

func (r *MatchRepository) ListByMatchup(_ context.Context, matchupID int64) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.items))
	for _, item := range r.items {
		if item.MatchupID == matchupID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item
	return item, nil
}

func (r *MatchRepository) UpdateScores(_ context.Context, matchID int64, scoreA, scoreB int, scoredAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[matchID]
	if !ok {
		return nil
	}
	item.ScoreA = &scoreA
	item.ScoreB = &scoreB
	if scoredAt != nil {
		at := *scoredAt
		item.ScoredAt = &at
	}
	r.items[matchID] = item
	return nil
}

func (r *MatchRepository) UpdateHandicap(_ context.Context, matchID int64, handicap int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[matchID]
	if !ok {
		return nil
	}
	item.Handicap = handicap
	r.items[matchID] = item
	return nil
}
