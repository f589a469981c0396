package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/matchups", handler.ListMatchups)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/rosters", handler.ListTournamentRosters)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/reserves", handler.ListReserves)
	mux.HandleFunc("GET /v1/teams/{teamID}/roster", handler.GetTeamRoster)
	mux.HandleFunc("GET /v1/matchups/{matchupID}/matches", handler.ListMatchesByMatchup)
	mux.HandleFunc("GET /v1/matches/{matchID}/suggested-handicap", handler.SuggestedMatchHandicap)
	// First-time score entry stays public so the courtside scorer app
	// works without credentials; corrections require the admin token.
	mux.HandleFunc("POST /v1/matches/{matchID}/score", handler.SubmitMatchScore)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAdminToken(adminToken, h)
	}

	mux.Handle("POST /v1/admin/tournaments", admin(handler.CreateTournament))
	mux.Handle("POST /v1/admin/teams", admin(handler.CreateTeam))
	mux.Handle("POST /v1/admin/matchups", admin(handler.CreateMatchup))
	mux.Handle("POST /v1/admin/matches", admin(handler.CreateMatch))
	mux.Handle("PUT /v1/admin/matches/{matchID}/score", admin(handler.CorrectMatchScore))
	mux.Handle("PUT /v1/admin/matches/{matchID}/handicap", admin(handler.SetMatchHandicap))
	mux.Handle("POST /v1/admin/tournaments/{tournamentID}/recompute", admin(handler.RecomputeTournament))
	mux.Handle("POST /v1/admin/teams/{teamID}/players", admin(handler.CreatePlayer))
	mux.Handle("PUT /v1/admin/players/{playerID}", admin(handler.UpdatePlayer))
	mux.Handle("DELETE /v1/admin/players/{playerID}", admin(handler.DeletePlayer))
	mux.Handle("POST /v1/admin/tournaments/{tournamentID}/reserves", admin(handler.CreateReserve))
	mux.Handle("PUT /v1/admin/reserves/{reserveID}", admin(handler.UpdateReserve))
	mux.Handle("DELETE /v1/admin/reserves/{reserveID}", admin(handler.DeleteReserve))
}
