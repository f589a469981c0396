package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/StNick/squash-team-challenge/internal/domain/player"
	qb "github.com/StNick/squash-team-challenge/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by team: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) (player.Player, error) {
	insertModel := playerInsertModel{
		TeamID: item.TeamID,
		Name:   item.Name,
		Level:  item.Level,
	}
	query, args, err := qb.InsertModel("players", insertModel, "RETURNING id")
	if err != nil {
		return player.Player{}, fmt.Errorf("build create player query: %w", err)
	}
	if err := r.db.GetContext(ctx, &item.ID, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	return item, nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	query, args, err := qb.Update("players").
		Set("team_id", item.TeamID).
		Set("name", item.Name).
		Set("level", item.Level).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM players WHERE id = $1", playerID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:     row.ID,
		TeamID: row.TeamID,
		Name:   row.Name,
		Level:  row.Level,
	}
}

type ReserveRepository struct {
	db *sqlx.DB
}

func NewReserveRepository(db *sqlx.DB) *ReserveRepository {
	return &ReserveRepository{db: db}
}

func (r *ReserveRepository) ListByTournament(ctx context.Context, tournamentID int64) ([]player.Reserve, error) {
	query, args, err := qb.Select("*").From("reserves").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select reserves query: %w", err)
	}

	var rows []reserveTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select reserves by tournament: %w", err)
	}

	out := make([]player.Reserve, 0, len(rows))
	for _, row := range rows {
		out = append(out, reserveFromRow(row))
	}
	return out, nil
}

func (r *ReserveRepository) GetByID(ctx context.Context, reserveID int64) (player.Reserve, bool, error) {
	query, args, err := qb.Select("*").From("reserves").
		Where(qb.Eq("id", reserveID)).
		ToSQL()
	if err != nil {
		return player.Reserve{}, false, fmt.Errorf("build get reserve query: %w", err)
	}

	var row reserveTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Reserve{}, false, nil
		}
		return player.Reserve{}, false, fmt.Errorf("get reserve by id: %w", err)
	}
	return reserveFromRow(row), true, nil
}

func (r *ReserveRepository) Create(ctx context.Context, item player.Reserve) (player.Reserve, error) {
	insertModel := reserveInsertModel{
		TournamentID: item.TournamentID,
		Name:         item.Name,
		Level:        item.Level,
	}
	query, args, err := qb.InsertModel("reserves", insertModel, "RETURNING id")
	if err != nil {
		return player.Reserve{}, fmt.Errorf("build create reserve query: %w", err)
	}
	if err := r.db.GetContext(ctx, &item.ID, query, args...); err != nil {
		return player.Reserve{}, fmt.Errorf("create reserve: %w", err)
	}
	return item, nil
}

func (r *ReserveRepository) Update(ctx context.Context, item player.Reserve) error {
	query, args, err := qb.Update("reserves").
		Set("tournament_id", item.TournamentID).
		Set("name", item.Name).
		Set("level", item.Level).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update reserve query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update reserve: %w", err)
	}
	return nil
}

func (r *ReserveRepository) Delete(ctx context.Context, reserveID int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM reserves WHERE id = $1", reserveID); err != nil {
		return fmt.Errorf("delete reserve: %w", err)
	}
	return nil
}

func reserveFromRow(row reserveTableModel) player.Reserve {
	return player.Reserve{
		ID:           row.ID,
		TournamentID: row.TournamentID,
		Name:         row.Name,
		Level:        row.Level,
	}
}
