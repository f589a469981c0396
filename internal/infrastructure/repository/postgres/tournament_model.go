package postgres

import "time"

type tournamentTableModel struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Season      string    `db:"season"`
	CurrentWeek int       `db:"current_week"`
	WeekCount   int       `db:"week_count"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type tournamentInsertModel struct {
	Name        string `db:"name"`
	Season      string `db:"season"`
	CurrentWeek int    `db:"current_week"`
	WeekCount   int    `db:"week_count"`
}
