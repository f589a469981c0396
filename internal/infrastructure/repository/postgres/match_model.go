package postgres

import (
	"database/sql"
	"time"

	"github.com/StNick/squash-team-challenge/internal/domain/match"
)

type matchTableModel struct {
	ID               int64          `db:"id"`
	MatchupID        int64          `db:"matchup_id"`
	Position         int            `db:"position"`
	PlayerAID        sql.NullInt64  `db:"player_a_id"`
	PlayerBID        sql.NullInt64  `db:"player_b_id"`
	SubstituteAKind  string         `db:"substitute_a_kind"`
	SubstituteAResID sql.NullInt64  `db:"substitute_a_reserve_id"`
	SubstituteAName  sql.NullString `db:"substitute_a_name"`
	SubstituteALevel sql.NullInt64  `db:"substitute_a_level"`
	SubstituteBKind  string         `db:"substitute_b_kind"`
	SubstituteBResID sql.NullInt64  `db:"substitute_b_reserve_id"`
	SubstituteBName  sql.NullString `db:"substitute_b_name"`
	SubstituteBLevel sql.NullInt64  `db:"substitute_b_level"`
	ScoreA           sql.NullInt64  `db:"score_a"`
	ScoreB           sql.NullInt64  `db:"score_b"`
	Handicap         int            `db:"handicap"`
	ScoredAt         *time.Time     `db:"scored_at"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

type matchInsertModel struct {
	MatchupID        int64          `db:"matchup_id"`
	Position         int            `db:"position"`
	PlayerAID        sql.NullInt64  `db:"player_a_id"`
	PlayerBID        sql.NullInt64  `db:"player_b_id"`
	SubstituteAKind  string         `db:"substitute_a_kind"`
	SubstituteAResID sql.NullInt64  `db:"substitute_a_reserve_id"`
	SubstituteAName  sql.NullString `db:"substitute_a_name"`
	SubstituteALevel sql.NullInt64  `db:"substitute_a_level"`
	SubstituteBKind  string         `db:"substitute_b_kind"`
	SubstituteBResID sql.NullInt64  `db:"substitute_b_reserve_id"`
	SubstituteBName  sql.NullString `db:"substitute_b_name"`
	SubstituteBLevel sql.NullInt64  `db:"substitute_b_level"`
	Handicap         int            `db:"handicap"`
}

func substituteColumns(s match.Substitute) (kind string, reserveID sql.NullInt64, name sql.NullString, level sql.NullInt64) {
	switch s.Kind {
	case match.SubstituteReserve:
		return string(match.SubstituteReserve), sql.NullInt64{Int64: s.ReserveID, Valid: true}, sql.NullString{}, sql.NullInt64{}
	case match.SubstituteCustom:
		return string(match.SubstituteCustom), sql.NullInt64{},
			sql.NullString{String: s.CustomName, Valid: true},
			sql.NullInt64{Int64: int64(s.CustomLevel), Valid: true}
	default:
		return string(match.SubstituteNone), sql.NullInt64{}, sql.NullString{}, sql.NullInt64{}
	}
}

func substituteFromColumns(kind string, reserveID sql.NullInt64, name sql.NullString, level sql.NullInt64) match.Substitute {
	switch match.SubstituteKind(kind) {
	case match.SubstituteReserve:
		return match.Substitute{Kind: match.SubstituteReserve, ReserveID: reserveID.Int64}
	case match.SubstituteCustom:
		return match.Substitute{Kind: match.SubstituteCustom, CustomName: name.String, CustomLevel: int(level.Int64)}
	default:
		return match.Substitute{Kind: match.SubstituteNone}
	}
}

func nullableScore(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	score := int(v.Int64)
	return &score
}
