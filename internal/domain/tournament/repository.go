package tournament

import "context"

type Repository interface {
	List(ctx context.Context) ([]Tournament, error)
	GetByID(ctx context.Context, tournamentID int64) (Tournament, bool, error)
	Create(ctx context.Context, item Tournament) (Tournament, error)
}
