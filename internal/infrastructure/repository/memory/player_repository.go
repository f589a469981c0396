package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/StNick/squash-team-challenge/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]player.Player
}

func NewPlayerRepository(seed []player.Player) *PlayerRepository {
	r := &PlayerRepository{
		nextID: 1,
		items:  make(map[int64]player.Player),
	}
	for _, item := range seed {
		if item.ID >= r.nextID {
			r.nextID = item.ID + 1
		}
		r.items[item.ID] = item
	}
	return r
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID int64) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, item := range r.items {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[playerID]
	return item, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) (player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item
	return item, nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return nil
	}
	r.items[item.ID] = item
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, playerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, playerID)
	return nil
}

type ReserveRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]player.Reserve
}

func NewReserveRepository(seed []player.Reserve) *ReserveRepository {
	r := &ReserveRepository{
		nextID: 1,
		items:  make(map[int64]player.Reserve),
	}
	for _, item := range seed {
		if item.ID >= r.nextID {
			r.nextID = item.ID + 1
		}
		r.items[item.ID] = item
	}
	return r
}

func (r *ReserveRepository) ListByTournament(_ context.Context, tournamentID int64) ([]player.Reserve, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Reserve, 0, len(r.items))
	for _, item := range r.items {
		if item.TournamentID == tournamentID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ReserveRepository) GetByID(_ context.Context, reserveID int64) (player.Reserve, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[reserveID]
	return item, ok, nil
}

func (r *ReserveRepository) Create(_ context.Context, item player.Reserve) (player.Reserve, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item
	return item, nil
}

func (r *ReserveRepository) Update(_ context.Context, item player.Reserve) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return nil
	}
	r.items[item.ID] = item
	return nil
}

func (r *ReserveRepository) Delete(_ context.Context, reserveID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, reserveID)
	return nil
}
