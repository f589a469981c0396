package httpapi

import (
	"net/http"
)

type submitScoreRequest struct {
	ScoreA int `json:"scoreA" validate:"gte=0"`
	ScoreB int `json:"scoreB" validate:"gte=0"`
}

// SubmitMatchScore records the first result for a match. Resubmissions
// are rejected with 409 so a flaky scorer client cannot double-count;
// corrections go through the admin route instead.
func (h *Handler) SubmitMatchScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitMatchScore")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitScoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.aggregationService.SubmitScore(ctx, matchID, req.ScoreA, req.ScoreB); err != nil {
		h.logger.WarnContext(ctx, "submit score failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"matchId": matchID, "scoreA": req.ScoreA, "scoreB": req.ScoreB})
}

func (h *Handler) CorrectMatchScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CorrectMatchScore")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitScoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.aggregationService.CorrectScore(ctx, matchID, req.ScoreA, req.ScoreB); err != nil {
		h.logger.WarnContext(ctx, "correct score failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"matchId": matchID, "scoreA": req.ScoreA, "scoreB": req.ScoreB})
}

type setHandicapRequest struct {
	Handicap int `json:"handicap"`
}

func (h *Handler) SetMatchHandicap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetMatchHandicap")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setHandicapRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.aggregationService.SetHandicap(ctx, matchID, req.Handicap); err != nil {
		h.logger.WarnContext(ctx, "set handicap failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"matchId": matchID, "handicap": req.Handicap})
}

func (h *Handler) SuggestedMatchHandicap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SuggestedMatchHandicap")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	suggestion, err := h.aggregationService.SuggestedHandicap(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "suggested handicap failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, suggestion)
}

type recomputeTournamentRequest struct {
	MaxWorkers int `json:"maxWorkers" validate:"gte=0,lte=64"`
}

// RecomputeTournament rebuilds every matchup total and team season total
// in the tournament from the stored match rows. It is the repair hatch
// for totals that drifted after manual database edits.
func (h *Handler) RecomputeTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeTournament")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := recomputeTournamentRequest{}
	if r.ContentLength > 0 {
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	result, err := h.aggregationService.RecomputeTournament(ctx, tournamentID, req.MaxWorkers)
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
