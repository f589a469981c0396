package scorestate

import (
	"fmt"
	"strings"
	"time"
)

// Side identifies one of the two players in a match.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Box is the court side the current server must serve from.
type Box string

const (
	BoxLeft  Box = "L"
	BoxRight Box = "R"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// HistoryLimit bounds the retained point log and therefore the undo depth.
// Events evicted by the cap cannot be undone; scores are tracked
// independently and stay correct.
const HistoryLimit = 50

// PlayerInfo is immutable for the lifetime of a scoring session.
type PlayerInfo struct {
	Name      string `json:"name"`
	TeamColor string `json:"teamColor"`
}

// PointEvent records one scored point. Server, ServiceBox and IsHandout are
// the serving conditions before the point was applied; ScoreA/ScoreB are the
// totals after it.
type PointEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	Scorer     Side      `json:"scorer"`
	ScoreA     int       `json:"scoreA"`
	ScoreB     int       `json:"scoreB"`
	Server     Side      `json:"server"`
	ServiceBox Box       `json:"serviceBox"`
	IsHandout  bool      `json:"isHandout"`
}

// BoxPreferences remembers the last box each side actively chose, so a
// handout back to that side defaults to it.
type BoxPreferences struct {
	A Box `json:"A"`
	B Box `json:"B"`
}

func (p BoxPreferences) For(side Side) Box {
	if side == SideB {
		return p.B
	}
	return p.A
}

func (p BoxPreferences) with(side Side, box Box) BoxPreferences {
	if side == SideB {
		p.B = box
	} else {
		p.A = box
	}
	return p
}

// State is the full live-scoring state for one in-progress match. Values are
// immutable; transitions return a new State.
type State struct {
	MatchID      int64          `json:"matchId"`
	PlayerA      PlayerInfo     `json:"playerA"`
	PlayerB      PlayerInfo     `json:"playerB"`
	ScoreA       int            `json:"scoreA"`
	ScoreB       int            `json:"scoreB"`
	Server       Side           `json:"server"`
	ServiceBox   Box            `json:"serviceBox"`
	IsHandout    bool           `json:"isHandout"`
	PreferredBox BoxPreferences `json:"preferredBox"`
	MatchStart   time.Time      `json:"matchStartTime"`
	History      []PointEvent   `json:"history"`
	Status       Status         `json:"status"`
}

func (s State) Opponent(side Side) Side {
	if side == SideA {
		return SideB
	}
	return SideA
}

// Elapsed reports session wall-clock time for display only.
func (s State) Elapsed(now time.Time) time.Duration {
	if s.MatchStart.IsZero() || now.Before(s.MatchStart) {
		return 0
	}
	return now.Sub(s.MatchStart)
}

func ParseSide(v string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "A":
		return SideA, nil
	case "B":
		return SideB, nil
	default:
		return "", fmt.Errorf("invalid side %q: valid values are A, B", v)
	}
}

func ParseBox(v string) (Box, error) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "L":
		return BoxLeft, nil
	case "R":
		return BoxRight, nil
	default:
		return "", fmt.Errorf("invalid service box %q: valid values are L, R", v)
	}
}
