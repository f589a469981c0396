package cache

import (
	"context"
	"strconv"

	"github.com/StNick/squash-team-challenge/internal/domain/player"
	"github.com/StNick/squash-team-challenge/internal/domain/team"
	"github.com/StNick/squash-team-challenge/internal/domain/tournament"
	basecache "github.com/StNick/squash-team-challenge/internal/platform/cache"
)

// Read-through decorators for the read-heavy repositories. The scoring
// write path (matches, matchups) stays uncached: its rows change on every
// submission and the recompute pipeline rereads them immediately.

type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	v, err := r.cache.GetOrLoad(ctx, "tournament:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]tournament.Tournament(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]tournament.Tournament)
	return append([]tournament.Tournament(nil), items...), nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	key := "tournament:id:" + strconv.FormatInt(tournamentID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return cachedTournamentByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}

	cached, _ := v.(cachedTournamentByID)
	return cached.value, cached.exists, nil
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return tournament.Tournament{}, err
	}
	r.cache.DeletePrefix(ctx, "tournament:")
	return created, nil
}

type cachedTournamentByID struct {
	value  tournament.Tournament
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListByTournament(ctx context.Context, tournamentID int64) ([]team.Team, error) {
	key := "team:list:" + strconv.FormatInt(tournamentID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByTournament(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	key := "team:id:" + strconv.FormatInt(teamID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return team.Team{}, err
	}
	r.cache.DeletePrefix(ctx, "team:")
	return created, nil
}

// UpdateTotalScore drops every cached team entry; standings read the new
// totals on the next request.
func (r *TeamRepository) UpdateTotalScore(ctx context.Context, teamID int64, totalScore int) error {
	if err := r.next.UpdateTotalScore(ctx, teamID, totalScore); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "team:")
	return nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	key := "player:list:" + strconv.FormatInt(teamID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	key := "player:id:" + strconv.FormatInt(playerID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) (player.Player, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return player.Player{}, err
	}
	r.cache.DeletePrefix(ctx, "player:")
	return created, nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "player:")
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID int64) error {
	if err := r.next.Delete(ctx, playerID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "player:")
	return nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

type ReserveRepository struct {
	next  player.ReserveRepository
	cache *basecache.Store
}

func NewReserveRepository(next player.ReserveRepository, cache *basecache.Store) *ReserveRepository {
	return &ReserveRepository{next: next, cache: cache}
}

func (r *ReserveRepository) ListByTournament(ctx context.Context, tournamentID int64) ([]player.Reserve, error) {
	key := "reserve:list:" + strconv.FormatInt(tournamentID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByTournament(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return append([]player.Reserve(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Reserve)
	return append([]player.Reserve(nil), items...), nil
}

func (r *ReserveRepository) GetByID(ctx context.Context, reserveID int64) (player.Reserve, bool, error) {
	key := "reserve:id:" + strconv.FormatInt(reserveID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, reserveID)
		if err != nil {
			return nil, err
		}
		return cachedReserveByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Reserve{}, false, err
	}

	cached, _ := v.(cachedReserveByID)
	return cached.value, cached.exists, nil
}

func (r *ReserveRepository) Create(ctx context.Context, item player.Reserve) (player.Reserve, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return player.Reserve{}, err
	}
	r.cache.DeletePrefix(ctx, "reserve:")
	return created, nil
}

func (r *ReserveRepository) Update(ctx context.Context, item player.Reserve) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "reserve:")
	return nil
}

func (r *ReserveRepository) Delete(ctx context.Context, reserveID int64) error {
	if err := r.next.Delete(ctx, reserveID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "reserve:")
	return nil
}

type cachedReserveByID struct {
	value  player.Reserve
	exists bool
}
