package memory

import (
	"github.com/StNick/squash-team-challenge/internal/domain/match"
	"github.com/StNick/squash-team-challenge/internal/domain/matchup"
	"github.com/StNick/squash-team-challenge/internal/domain/player"
	"github.com/StNick/squash-team-challenge/internal/domain/team"
	"github.com/StNick/squash-team-challenge/internal/domain/tournament"
)

// Seed data for DB-less development runs. One small tournament with two
// teams, rostered players, one reserve and one scheduled week.
const SeedTournamentID int64 = 1

func SeedTournaments() []tournament.Tournament {
	return []tournament.Tournament{
		{ID: SeedTournamentID, Name: "Club Team Challenge", Season: "2026", CurrentWeek: 1, WeekCount: 10},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: 1, TournamentID: SeedTournamentID, Name: "Red Dragons", Color: "red"},
		{ID: 2, TournamentID: SeedTournamentID, Name: "Blue Kings", Color: "blue"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: 1, TeamID: 1, Name: "Alice Carter", Level: 62},
		{ID: 2, TeamID: 1, Name: "Maya Singh", Level: 48},
		{ID: 3, TeamID: 2, Name: "Bob Novak", Level: 55},
		{ID: 4, TeamID: 2, Name: "Tom Reyes", Level: 41},
	}
}

func SeedReserves() []player.Reserve {
	return []player.Reserve{
		{ID: 1, TournamentID: SeedTournamentID, Name: "Jonas Falk", Level: 50},
	}
}

func SeedMatchups() []matchup.Matchup {
	return []matchup.Matchup{
		{ID: 1, TournamentID: SeedTournamentID, Week: 1, TeamAID: 1, TeamBID: 2},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{ID: 1, MatchupID: 1, Position: 1, PlayerAID: 1, PlayerBID: 3, Handicap: 5},
		{ID: 2, MatchupID: 1, Position: 2, PlayerAID: 2, PlayerBID: 4},
	}
}
