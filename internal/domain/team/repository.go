package team

import "context"

type Repository interface {
	ListByTournament(ctx context.Context, tournamentID int64) ([]Team, error)
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	Create(ctx context.Context, item Team) (Team, error)
	UpdateTotalScore(ctx context.Context, teamID int64, totalScore int) error
}
