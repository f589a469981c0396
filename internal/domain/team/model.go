package team

import (
	"fmt"
	"strings"
)

// Team carries its running season total: the sum of this team's adjusted
// scores across every weekly matchup it plays in.
type Team struct {
	ID           int64
	TournamentID int64
	Name         string
	Color        string
	TotalScore   int
}

func (t Team) Validate() error {
	if t.TournamentID <= 0 {
		return fmt.Errorf("team tournament id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}
