package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/StNick/squash-team-challenge/internal/domain/match"
	"github.com/StNick/squash-team-challenge/internal/domain/matchup"
	"github.com/StNick/squash-team-challenge/internal/domain/team"
	"github.com/StNick/squash-team-challenge/internal/domain/tournament"
	"github.com/StNick/squash-team-challenge/internal/usecase"
)

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	tournaments, err := h.tournamentService.ListTournaments(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]tournamentDTO, 0, len(tournaments))
	for _, t := range tournaments {
		items = append(items, tournamentToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.GetTournament(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(ctx, item))
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	standings, err := h.tournamentService.Standings(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(standings))
	for _, s := range standings {
		items = append(items, standingToDTO(ctx, s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchups")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	week := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("week")); raw != "" {
		week, err = strconv.Atoi(raw)
		if err != nil || week < 1 {
			writeError(ctx, w, fmt.Errorf("%w: week must be a positive integer, got %q", usecase.ErrInvalidInput, raw))
			return
		}
	}

	matchups, err := h.tournamentService.MatchupsByWeek(ctx, tournamentID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list matchups failed", "tournament_id", tournamentID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchupDTO, 0, len(matchups))
	for _, m := range matchups {
		items = append(items, matchupToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMatchesByMatchup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesByMatchup")
	defer span.End()

	matchupID, err := pathID(r, "matchupID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.tournamentService.MatchesByMatchup(ctx, matchupID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "matchup_id", matchupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type createTournamentRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Season      string `json:"season" validate:"omitempty,max=40"`
	CurrentWeek int    `json:"currentWeek" validate:"gte=0"`
	WeekCount   int    `json:"weekCount" validate:"required,gte=1"`
}

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTournament")
	defer span.End()

	var req createTournamentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.CreateTournament(ctx, tournament.Tournament{
		Name:        req.Name,
		Season:      req.Season,
		CurrentWeek: req.CurrentWeek,
		WeekCount:   req.WeekCount,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create tournament failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tournamentToDTO(ctx, item))
}

type createTeamRequest struct {
	TournamentID int64  `json:"tournamentId" validate:"required,gt=0"`
	Name         string `json:"name" validate:"required,max=120"`
	Color        string `json:"color" validate:"omitempty,max=40"`
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.CreateTeam(ctx, team.Team{
		TournamentID: req.TournamentID,
		Name:         req.Name,
		Color:        req.Color,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(ctx, item))
}

type createMatchupRequest struct {
	TournamentID int64 `json:"tournamentId" validate:"required,gt=0"`
	Week         int   `json:"week" validate:"required,gte=1"`
	TeamAID      int64 `json:"teamAId" validate:"required,gt=0"`
	TeamBID      int64 `json:"teamBId" validate:"required,gt=0"`
}

func (h *Handler) CreateMatchup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatchup")
	defer span.End()

	var req createMatchupRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.CreateMatchup(ctx, matchup.Matchup{
		TournamentID: req.TournamentID,
		Week:         req.Week,
		TeamAID:      req.TeamAID,
		TeamBID:      req.TeamBID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create matchup failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchupToDTO(ctx, item))
}

type substituteRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=none reserve custom"`
	ReserveID   int64  `json:"reserveId" validate:"omitempty,gt=0"`
	CustomName  string `json:"customName" validate:"omitempty,max=120"`
	CustomLevel int    `json:"customLevel" validate:"gte=0"`
}

type createMatchRequest struct {
	MatchupID   int64              `json:"matchupId" validate:"required,gt=0"`
	Position    int                `json:"position" validate:"required,gte=1"`
	PlayerAID   int64              `json:"playerAId" validate:"omitempty,gt=0"`
	PlayerBID   int64              `json:"playerBId" validate:"omitempty,gt=0"`
	SubstituteA *substituteRequest `json:"substituteA" validate:"omitempty"`
	SubstituteB *substituteRequest `json:"substituteB" validate:"omitempty"`
	Handicap    int                `json:"handicap"`
}

func substituteFromRequest(req *substituteRequest) match.Substitute {
	if req == nil {
		return match.Substitute{Kind: match.SubstituteNone}
	}

	return match.Substitute{
		Kind:        match.SubstituteKind(req.Kind),
		ReserveID:   req.ReserveID,
		CustomName:  req.CustomName,
		CustomLevel: req.CustomLevel,
	}
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.CreateMatch(ctx, match.Match{
		MatchupID:   req.MatchupID,
		Position:    req.Position,
		PlayerAID:   req.PlayerAID,
		PlayerBID:   req.PlayerBID,
		SubstituteA: substituteFromRequest(req.SubstituteA),
		SubstituteB: substituteFromRequest(req.SubstituteB),
		Handicap:    req.Handicap,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "matchup_id", req.MatchupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(ctx, item))
}
