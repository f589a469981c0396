package matchup

import "fmt"

// Matchup is one week's pairing of two teams. The score columns hold the
// sum of adjusted match scores and are owned by the recompute pipeline;
// they are never written directly by request handlers.
type Matchup struct {
	ID           int64
	TournamentID int64
	Week         int
	TeamAID      int64
	TeamBID      int64
	TeamAScore   int
	TeamBScore   int
	IsComplete   bool
}

func (m Matchup) Validate() error {
	if m.TournamentID <= 0 {
		return fmt.Errorf("matchup tournament id is required")
	}
	if m.Week < 1 {
		return fmt.Errorf("matchup week must be >= 1")
	}
	if m.TeamAID <= 0 || m.TeamBID <= 0 {
		return fmt.Errorf("matchup requires two team ids")
	}
	if m.TeamAID == m.TeamBID {
		return fmt.Errorf("matchup teams must differ")
	}
	return nil
}
