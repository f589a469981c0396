package httpapi

import (
	"context"
	"time"

	"github.com/StNick/squash-team-challenge/internal/domain/match"
	"github.com/StNick/squash-team-challenge/internal/domain/matchup"
	"github.com/StNick/squash-team-challenge/internal/domain/player"
	"github.com/StNick/squash-team-challenge/internal/domain/team"
	"github.com/StNick/squash-team-challenge/internal/domain/tournament"
	"github.com/StNick/squash-team-challenge/internal/usecase"
)

type tournamentDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Season      string `json:"season"`
	CurrentWeek int    `json:"currentWeek"`
	WeekCount   int    `json:"weekCount"`
}

type teamDTO struct {
	ID           int64  `json:"id"`
	TournamentID int64  `json:"tournamentId"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	TotalScore   int    `json:"totalScore"`
}

type standingDTO struct {
	Rank       int    `json:"rank"`
	TeamID     int64  `json:"teamId"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	TotalScore int    `json:"totalScore"`
}

type matchupDTO struct {
	ID           int64 `json:"id"`
	TournamentID int64 `json:"tournamentId"`
	Week         int   `json:"week"`
	TeamAID      int64 `json:"teamAId"`
	TeamBID      int64 `json:"teamBId"`
	TeamAScore   int   `json:"teamAScore"`
	TeamBScore   int   `json:"teamBScore"`
	IsComplete   bool  `json:"isComplete"`
}

type substituteDTO struct {
	Kind        string `json:"kind"`
	ReserveID   int64  `json:"reserveId,omitempty"`
	CustomName  string `json:"customName,omitempty"`
	CustomLevel int    `json:"customLevel,omitempty"`
}

type matchDTO struct {
	ID          int64          `json:"id"`
	MatchupID   int64          `json:"matchupId"`
	Position    int            `json:"position"`
	PlayerAID   int64          `json:"playerAId,omitempty"`
	PlayerBID   int64          `json:"playerBId,omitempty"`
	SubstituteA *substituteDTO `json:"substituteA,omitempty"`
	SubstituteB *substituteDTO `json:"substituteB,omitempty"`
	ScoreA      *int           `json:"scoreA,omitempty"`
	ScoreB      *int           `json:"scoreB,omitempty"`
	Handicap    int            `json:"handicap"`
	ScoredAt    string         `json:"scoredAt,omitempty"`
}

type playerDTO struct {
	ID     int64  `json:"id"`
	TeamID int64  `json:"teamId"`
	Name   string `json:"name"`
	Level  int    `json:"level"`
}

type reserveDTO struct {
	ID           int64  `json:"id"`
	TournamentID int64  `json:"tournamentId"`
	Name         string `json:"name"`
	Level        int    `json:"level"`
}

type teamRosterDTO struct {
	Team    teamDTO     `json:"team"`
	Players []playerDTO `json:"players"`
}

func tournamentToDTO(ctx context.Context, v tournament.Tournament) tournamentDTO {
	ctx, span := startSpan(ctx, "httpapi.tournamentToDTO")
	defer span.End()

	return tournamentDTO{
		ID:          v.ID,
		Name:        v.Name,
		Season:      v.Season,
		CurrentWeek: v.CurrentWeek,
		WeekCount:   v.WeekCount,
	}
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		ID:           v.ID,
		TournamentID: v.TournamentID,
		Name:         v.Name,
		Color:        v.Color,
		TotalScore:   v.TotalScore,
	}
}

func standingToDTO(ctx context.Context, v usecase.TeamStanding) standingDTO {
	ctx, span := startSpan(ctx, "httpapi.standingToDTO")
	defer span.End()

	return standingDTO{
		Rank:       v.Rank,
		TeamID:     v.TeamID,
		Name:       v.Name,
		Color:      v.Color,
		TotalScore: v.TotalScore,
	}
}

func matchupToDTO(ctx context.Context, v matchup.Matchup) matchupDTO {
	ctx, span := startSpan(ctx, "httpapi.matchupToDTO")
	defer span.End()

	return matchupDTO{
		ID:           v.ID,
		TournamentID: v.TournamentID,
		Week:         v.Week,
		TeamAID:      v.TeamAID,
		TeamBID:      v.TeamBID,
		TeamAScore:   v.TeamAScore,
		TeamBScore:   v.TeamBScore,
		IsComplete:   v.IsComplete,
	}
}

func substituteToDTO(v match.Substitute) *substituteDTO {
	if v.Kind == match.SubstituteNone || v.Kind == "" {
		return nil
	}

	return &substituteDTO{
		Kind:        string(v.Kind),
		ReserveID:   v.ReserveID,
		CustomName:  v.CustomName,
		CustomLevel: v.CustomLevel,
	}
}

func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	scoredAt := ""
	if v.ScoredAt != nil {
		scoredAt = v.ScoredAt.UTC().Format(time.RFC3339)
	}

	return matchDTO{
		ID:          v.ID,
		MatchupID:   v.MatchupID,
		Position:    v.Position,
		PlayerAID:   v.PlayerAID,
		PlayerBID:   v.PlayerBID,
		SubstituteA: substituteToDTO(v.SubstituteA),
		SubstituteB: substituteToDTO(v.SubstituteB),
		ScoreA:      v.ScoreA,
		ScoreB:      v.ScoreB,
		Handicap:    v.Handicap,
		ScoredAt:    scoredAt,
	}
}

func playerToDTO(ctx context.Context, v player.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:     v.ID,
		TeamID: v.TeamID,
		Name:   v.Name,
		Level:  v.Level,
	}
}

func reserveToDTO(ctx context.Context, v player.Reserve) reserveDTO {
	ctx, span := startSpan(ctx, "httpapi.reserveToDTO")
	defer span.End()

	return reserveDTO{
		ID:           v.ID,
		TournamentID: v.TournamentID,
		Name:         v.Name,
		Level:        v.Level,
	}
}

func rosterToDTO(ctx context.Context, v usecase.TeamRoster) teamRosterDTO {
	ctx, span := startSpan(ctx, "httpapi.rosterToDTO")
	defer span.End()

	players := make([]playerDTO, 0, len(v.Players))
	for _, p := range v.Players {
		players = append(players, playerToDTO(ctx, p))
	}

	return teamRosterDTO{
		Team:    teamToDTO(ctx, v.Team),
		Players: players,
	}
}
