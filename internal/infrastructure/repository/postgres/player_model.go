package postgres

import "time"

type playerTableModel struct {
	ID        int64     `db:"id"`
	TeamID    int64     `db:"team_id"`
	Name      string    `db:"name"`
	Level     int       `db:"level"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	TeamID int64  `db:"team_id"`
	Name   string `db:"name"`
	Level  int    `db:"level"`
}

type reserveTableModel struct {
	ID           int64     `db:"id"`
	TournamentID int64     `db:"tournament_id"`
	Name         string    `db:"name"`
	Level        int       `db:"level"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type reserveInsertModel struct {
	TournamentID int64  `db:"tournament_id"`
	Name         string `db:"name"`
	Level        int    `db:"level"`
}
