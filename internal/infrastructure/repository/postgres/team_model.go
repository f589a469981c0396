package postgres

import "time"

type teamTableModel struct {
	ID           int64     `db:"id"`
	TournamentID int64     `db:"tournament_id"`
	Name         string    `db:"name"`
	Color        string    `db:"color"`
	TotalScore   int       `db:"total_score"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	TournamentID int64  `db:"tournament_id"`
	Name         string `db:"name"`
	Color        string `db:"color"`
	TotalScore   int    `db:"total_score"`
}
