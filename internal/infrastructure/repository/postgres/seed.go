package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/StNick/squash-team-challenge/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the development fixtures into an empty database.
// A database that already has a tournament is left alone.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM tournaments`); err != nil {
		return fmt.Errorf("count tournaments for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range memory.SeedTournaments() {
		query, args, err := sqlx.Named(`
INSERT INTO tournaments (id, name, season, current_week, week_count)
VALUES (:id, :name, :season, :currentweek, :weekcount)`, map[string]any{
			"id":          item.ID,
			"name":        item.Name,
			"season":      item.Season,
			"currentweek": item.CurrentWeek,
			"weekcount":   item.WeekCount,
		})
		if err != nil {
			return fmt.Errorf("build seed tournament query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("seed tournament: %w", err)
		}
	}

	for _, item := range memory.SeedTeams() {
		query, args, err := sqlx.Named(`
INSERT INTO teams (id, tournament_id, name, color)
VALUES (:id, :tournamentid, :name, :color)`, map[string]any{
			"id":           item.ID,
			"tournamentid": item.TournamentID,
			"name":         item.Name,
			"color":        item.Color,
		})
		if err != nil {
			return fmt.Errorf("build seed team query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("seed team: %w", err)
		}
	}

	for _, item := range memory.SeedPlayers() {
		query, args, err := sqlx.Named(`
INSERT INTO players (id, team_id, name, level)
VALUES (:id, :teamid, :name, :level)`, map[string]any{
			"id":     item.ID,
			"teamid": item.TeamID,
			"name":   item.Name,
			"level":  item.Level,
		})
		if err != nil {
			return fmt.Errorf("build seed player query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("seed player: %w", err)
		}
	}

	for _, item := range memory.SeedReserves() {
		query, args, err := sqlx.Named(`
INSERT INTO reserves (id, tournament_id, name, level)
VALUES (:id, :tournamentid, :name, :level)`, map[string]any{
			"id":           item.ID,
			"tournamentid": item.TournamentID,
			"name":         item.Name,
			"level":        item.Level,
		})
		if err != nil {
			return fmt.Errorf("build seed reserve query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("seed reserve: %w", err)
		}
	}

	for _, item := range memory.SeedMatchups() {
		query, args, err := sqlx.Named(`
INSERT INTO matchups (id, tournament_id, week, team_a_id, team_b_id)
VALUES (:id, :tournamentid, :week, :teamaid, :teambid)`, map[string]any{
			"id":           item.ID,
			"tournamentid": item.TournamentID,
			"week":         item.Week,
			"teamaid":      item.TeamAID,
			"teambid":      item.TeamBID,
		})
		if err != nil {
			return fmt.Errorf("build seed matchup query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("seed matchup: %w", err)
		}
	}

	for _, item := range memory.SeedMatches() {
		kindA, reserveA, nameA, levelA := substituteColumns(item.SubstituteA)
		kindB, reserveB, nameB, levelB := substituteColumns(item.SubstituteB)
		query, args, err := sqlx.Named(`
INSERT INTO matches (id, matchup_id, position, player_a_id, player_b_id,
	substitute_a_kind, substitute_a_reserve_id, substitute_a_name, substitute_a_level,
	substitute_b_kind, substitute_b_reserve_id, substitute_b_name, substitute_b_level,
	handicap)
VALUES (:id, :matchupid, :position, :playeraid, :playerbid,
	:subakind, :subareserveid, :subaname, :subalevel,
	:subbkind, :subbreserveid, :subbname, :subblevel,
	:handicap)`, map[string]any{
			"id":            item.ID,
			"matchupid":     item.MatchupID,
			"position":      item.Position,
			"playeraid":     nullableID(item.PlayerAID),
			"playerbid":     nullableID(item.PlayerBID),
			"subakind":      kindA,
			"subareserveid": reserveA,
			"subaname":      nameA,
			"subalevel":     levelA,
			"subbkind":      kindB,
			"subbreserveid": reserveB,
			"subbname":      nameB,
			"subblevel":     levelB,
			"handicap":      item.Handicap,
		})
		if err != nil {
			return fmt.Errorf("build seed match query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("seed match: %w", err)
		}
	}

	for _, table := range []string{"tournaments", "teams", "players", "reserves", "matchups", "matches"} {
		query := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT COALESCE(MAX(id), 1) FROM %s))",
			table, table)
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("advance %s id sequence: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
