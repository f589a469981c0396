package player

import "context"

type Repository interface {
	ListByTeam(ctx context.Context, teamID int64) ([]Player, error)
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	Create(ctx context.Context, item Player) (Player, error)
	Update(ctx context.Context, item Player) error
	Delete(ctx context.Context, playerID int64) error
}

type ReserveRepository interface {
	ListByTournament(ctx context.Context, tournamentID int64) ([]Reserve, error)
	GetByID(ctx context.Context, reserveID int64) (Reserve, bool, error)
	Create(ctx context.Context, item Reserve) (Reserve, error)
	Update(ctx context.Context, item Reserve) error
	Delete(ctx context.Context, reserveID int64) error
}
