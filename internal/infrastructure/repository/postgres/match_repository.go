package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/StNick/squash-team-challenge/internal/domain/match"
	qb "github.com/StNick/squash-team-challenge/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListByMatchup(ctx context.Context, matchupID int64) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("matchup_id", matchupID)).
		OrderBy("position", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by matchup: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	kindA, reserveA, nameA, levelA := substituteColumns(item.SubstituteA)
	kindB, reserveB, nameB, levelB := substituteColumns(item.SubstituteB)
	insertModel := matchInsertModel{
		MatchupID:        item.MatchupID,
		Position:         item.Position,
		PlayerAID:        nullableID(item.PlayerAID),
		PlayerBID:        nullableID(item.PlayerBID),
		SubstituteAKind:  kindA,
		SubstituteAResID: reserveA,
		SubstituteAName:  nameA,
		SubstituteALevel: levelA,
		SubstituteBKind:  kindB,
		SubstituteBResID: reserveB,
		SubstituteBName:  nameB,
		SubstituteBLevel: levelB,
		Handicap:         item.Handicap,
	}
	query, args, err := qb.InsertModel("matches", insertModel, "RETURNING id")
	if err != nil {
		return match.Match{}, fmt.Errorf("build create match query: %w", err)
	}
	if err := r.db.GetContext(ctx, &item.ID, query, args...); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}
	return item, nil
}

func (r *MatchRepository) UpdateScores(ctx context.Context, matchID int64, scoreA, scoreB int, scoredAt *time.Time) error {
	builder := qb.Update("matches").
		Set("score_a", scoreA).
		Set("score_b", scoreB).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", matchID))
	if scoredAt != nil {
		builder = builder.Set("scored_at", *scoredAt)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build update match scores query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match scores: %w", err)
	}
	return nil
}

func (r *MatchRepository) UpdateHandicap(ctx context.Context, matchID int64, handicap int) error {
	query, args, err := qb.Update("matches").
		Set("handicap", handicap).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match handicap query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match handicap: %w", err)
	}
	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:          row.ID,
		MatchupID:   row.MatchupID,
		Position:    row.Position,
		PlayerAID:   row.PlayerAID.Int64,
		PlayerBID:   row.PlayerBID.Int64,
		SubstituteA: substituteFromColumns(row.SubstituteAKind, row.SubstituteAResID, row.SubstituteAName, row.SubstituteALevel),
		SubstituteB: substituteFromColumns(row.SubstituteBKind, row.SubstituteBResID, row.SubstituteBName, row.SubstituteBLevel),
		ScoreA:      nullableScore(row.ScoreA),
		ScoreB:      nullableScore(row.ScoreB),
		Handicap:    row.Handicap,
		ScoredAt:    row.ScoredAt,
	}
}

func nullableID(id int64) sql.NullInt64 {
	if id <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}
