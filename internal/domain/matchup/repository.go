package matchup

import "context"

type Repository interface {
	GetByID(ctx context.Context, matchupID int64) (Matchup, bool, error)
	ListByTournament(ctx context.Context, tournamentID int64) ([]Matchup, error)
	ListByTournamentWeek(ctx context.Context, tournamentID int64, week int) ([]Matchup, error)
	ListByTeam(ctx context.Context, teamID int64) ([]Matchup, error)
	Create(ctx context.Context, item Matchup) (Matchup, error)
	UpdateTotals(ctx context.Context, matchupID int64, teamAScore, teamBScore int, isComplete bool) error

	// WithRecomputeLock runs fn while holding an exclusive per-matchup lock,
	// serializing concurrent recomputes of the same matchup. Recomputes of
	// different matchups proceed in parallel.
	WithRecomputeLock(ctx context.Context, matchupID int64, fn func(ctx context.Context) error) error
}
