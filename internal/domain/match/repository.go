package match

import (
	"context"
	"time"
)

type Repository interface {
	GetByID(ctx context.Context, matchID int64) (Match, bool, error)
	ListByMatchup(ctx context.Context, matchupID int64) ([]Match, error)
	Create(ctx context.Context, item Match) (Match, error)

	// UpdateScores writes both raw scores. A non-nil scoredAt replaces the
	// stored timestamp; nil keeps whatever is already there, so score
	// corrections never rewrite the original audit time.
	UpdateScores(ctx context.Context, matchID int64, scoreA, scoreB int, scoredAt *time.Time) error
	UpdateHandicap(ctx context.Context, matchID int64, handicap int) error
}
