package httpapi

import (
	"net/http"

	"github.com/StNick/squash-team-challenge/internal/domain/player"
)

func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRoster")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, err := h.rosterService.GetTeamRoster(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(ctx, roster))
}

func (h *Handler) ListTournamentRosters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournamentRosters")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rosters, err := h.rosterService.ListTournamentRosters(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list rosters failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamRosterDTO, 0, len(rosters))
	for _, roster := range rosters {
		items = append(items, rosterToDTO(ctx, roster))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListReserves(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListReserves")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	reserves, err := h.rosterService.ListReserves(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list reserves failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]reserveDTO, 0, len(reserves))
	for _, res := range reserves {
		items = append(items, reserveToDTO(ctx, res))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type playerRequest struct {
	Name  string `json:"name" validate:"required,max=120"`
	Level int    `json:"level" validate:"gte=0"`
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.rosterService.CreatePlayer(ctx, player.Player{
		TeamID: teamID,
		Name:   req.Name,
		Level:  req.Level,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(ctx, item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.UpdatePlayer(ctx, player.Player{
		ID:    playerID,
		Name:  req.Name,
		Level: req.Level,
	}); err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"playerId": playerID})
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.DeletePlayer(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"playerId": playerID})
}

func (h *Handler) CreateReserve(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateReserve")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.rosterService.CreateReserve(ctx, player.Reserve{
		TournamentID: tournamentID,
		Name:         req.Name,
		Level:        req.Level,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create reserve failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, reserveToDTO(ctx, item))
}

func (h *Handler) UpdateReserve(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateReserve")
	defer span.End()

	reserveID, err := pathID(r, "reserveID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.UpdateReserve(ctx, player.Reserve{
		ID:    reserveID,
		Name:  req.Name,
		Level: req.Level,
	}); err != nil {
		h.logger.WarnContext(ctx, "update reserve failed", "reserve_id", reserveID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"reserveId": reserveID})
}

func (h *Handler) DeleteReserve(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteReserve")
	defer span.End()

	reserveID, err := pathID(r, "reserveID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.DeleteReserve(ctx, reserveID); err != nil {
		h.logger.WarnContext(ctx, "delete reserve failed", "reserve_id", reserveID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"reserveId": reserveID})
}
