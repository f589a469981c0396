package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/StNick/squash-team-challenge/internal/domain/matchup"
	qb "github.com/StNick/squash-team-challenge/internal/platform/querybuilder"
)

type MatchupRepository struct {
	db *sqlx.DB
}

func NewMatchupRepository(db *sqlx.DB) *MatchupRepository {
	return &MatchupRepository{db: db}
}

func (r *MatchupRepository) GetByID(ctx context.Context, matchupID int64) (matchup.Matchup, bool, error) {
	query, args, err := qb.Select("*").From("matchups").
		Where(qb.Eq("id", matchupID)).
		ToSQL()
	if err != nil {
		return matchup.Matchup{}, false, fmt.Errorf("build get matchup query: %w", err)
	}

	var row matchupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchup.Matchup{}, false, nil
		}
		return matchup.Matchup{}, false, fmt.Errorf("get matchup by id: %w", err)
	}
	return matchupFromRow(row), true, nil
}

func (r *MatchupRepository) ListByTournament(ctx context.Context, tournamentID int64) ([]matchup.Matchup, error) {
	return r.selectMatchups(ctx, "select matchups by tournament",
		qb.Eq("tournament_id", tournamentID))
}

func (r *MatchupRepository) ListByTournamentWeek(ctx context.Context, tournamentID int64, week int) ([]matchup.Matchup, error) {
	return r.selectMatchups(ctx, "select matchups by week",
		qb.Eq("tournament_id", tournamentID),
		qb.Eq("week", week))
}

func (r *MatchupRepository) ListByTeam(ctx context.Context, teamID int64) ([]matchup.Matchup, error) {
	return r.selectMatchups(ctx, "select matchups by team",
		qb.Expr("(team_a_id = ? OR team_b_id = ?)", teamID, teamID))
}

func (r *MatchupRepository) selectMatchups(ctx context.Context, op string, conditions ...qb.Condition) ([]matchup.Matchup, error) {
	query, args, err := qb.Select("*").From("matchups").
		Where(conditions...).
		OrderBy("week", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []matchupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]matchup.Matchup, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchupFromRow(row))
	}
	return out, nil
}

func (r *MatchupRepository) Create(ctx context.Context, item matchup.Matchup) (matchup.Matchup, error) {
	insertModel := matchupInsertModel{
		TournamentID: item.TournamentID,
		Week:         item.Week,
		TeamAID:      item.TeamAID,
		TeamBID:      item.TeamBID,
	}
	query, args, err := qb.InsertModel("matchups", insertModel, "RETURNING id")
	if err != nil {
		return matchup.Matchup{}, fmt.Errorf("build create matchup query: %w", err)
	}
	if err := r.db.GetContext(ctx, &item.ID, query, args...); err != nil {
		return matchup.Matchup{}, fmt.Errorf("create matchup: %w", err)
	}
	return item, nil
}

func (r *MatchupRepository) UpdateTotals(ctx context.Context, matchupID int64, teamAScore, teamBScore int, isComplete bool) error {
	query, args, err := qb.Update("matchups").
		Set("team_a_score", teamAScore).
		Set("team_b_score", teamBScore).
		Set("is_complete", isComplete).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", matchupID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update matchup totals query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update matchup totals: %w", err)
	}
	return nil
}

// WithRecomputeLock holds a transaction-scoped advisory lock on the
// matchup id while fn runs, so concurrent recomputes of the same matchup
// queue up instead of racing. The lock is dropped when the transaction
// ends either way. fn issues its reads and writes on the pool, not on
// the lock-holding transaction: the lock provides mutual exclusion for
// the recompute window, not atomicity of fn's statements.
func (r *MatchupRepository) WithRecomputeLock(ctx context.Context, matchupID int64, fn func(ctx context.Context) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin recompute lock tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", matchupID); err != nil {
		return fmt.Errorf("acquire recompute lock: %w", err)
	}
	if err := fn(ctx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("release recompute lock: %w", err)
	}
	return nil
}

func matchupFromRow(row matchupTableModel) matchup.Matchup {
	return matchup.Matchup{
		ID:           row.ID,
		TournamentID: row.TournamentID,
		Week:         row.Week,
		TeamAID:      row.TeamAID,
		TeamBID:      row.TeamBID,
		TeamAScore:   row.TeamAScore,
		TeamBScore:   row.TeamBScore,
		IsComplete:   row.IsComplete,
	}
}
