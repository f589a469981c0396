package postgres

import "time"

type matchupTableModel struct {
	ID           int64     `db:"id"`
	TournamentID int64     `db:"tournament_id"`
	Week         int       `db:"week"`
	TeamAID      int64     `db:"team_a_id"`
	TeamBID      int64     `db:"team_b_id"`
	TeamAScore   int       `db:"team_a_score"`
	TeamBScore   int       `db:"team_b_score"`
	IsComplete   bool      `db:"is_complete"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type matchupInsertModel struct {
	TournamentID int64 `db:"tournament_id"`
	Week         int   `db:"week"`
	TeamAID      int64 `db:"team_a_id"`
	TeamBID      int64 `db:"team_b_id"`
}
