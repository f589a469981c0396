package tournament

import (
	"fmt"
	"strings"
)

// Tournament is one season of the team challenge. All queries take an
// explicit tournament id; there is no implicit "active tournament".
type Tournament struct {
	ID          int64
	Name        string
	Season      string
	CurrentWeek int
	WeekCount   int
}

func (t Tournament) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tournament name is required")
	}
	if t.WeekCount < 1 {
		return fmt.Errorf("tournament week count must be >= 1")
	}
	if t.CurrentWeek < 0 || t.CurrentWeek > t.WeekCount {
		return fmt.Errorf("tournament current week %d is outside 0..%d", t.CurrentWeek, t.WeekCount)
	}
	return nil
}
