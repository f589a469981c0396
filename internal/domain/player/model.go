package player

import (
	"fmt"
	"strings"
)

// Player is a rostered team member. Level is the club ranking value used
// when suggesting a handicap; higher means stronger.
type Player struct {
	ID     int64
	TeamID int64
	Name   string
	Level  int
}

func (p Player) Validate() error {
	if p.TeamID <= 0 {
		return fmt.Errorf("player team id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Level < 0 {
		return fmt.Errorf("player level must be >= 0")
	}
	return nil
}

// Reserve is a tournament-wide stand-in, not attached to any team. A match
// side can reference a reserve instead of its rostered player.
type Reserve struct {
	ID           int64
	TournamentID int64
	Name         string
	Level        int
}

func (r Reserve) Validate() error {
	if r.TournamentID <= 0 {
		return fmt.Errorf("reserve tournament id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("reserve name is required")
	}
	if r.Level < 0 {
		return fmt.Errorf("reserve level must be >= 0")
	}
	return nil
}
