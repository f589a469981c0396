package match

import (
	"fmt"
	"strings"
	"time"
)

// SubstituteKind discriminates the per-side substitute union. A side is
// played by its rostered player, by a tournament reserve, or by an ad-hoc
// guest entered with a name and level.
type SubstituteKind string

const (
	SubstituteNone    SubstituteKind = "none"
	SubstituteReserve SubstituteKind = "reserve"
	SubstituteCustom  SubstituteKind = "custom"
)

// Substitute is the tagged union for one side of a match. Exactly the
// fields for its Kind are meaningful; the rest stay zero.
type Substitute struct {
	Kind        SubstituteKind
	ReserveID   int64
	CustomName  string
	CustomLevel int
}

func (s Substitute) Validate() error {
	switch s.Kind {
	case SubstituteNone, "":
		return nil
	case SubstituteReserve:
		if s.ReserveID <= 0 {
			return fmt.Errorf("substitute reserve id is required")
		}
		return nil
	case SubstituteCustom:
		if strings.TrimSpace(s.CustomName) == "" {
			return fmt.Errorf("substitute custom name is required")
		}
		if s.CustomLevel < 0 {
			return fmt.Errorf("substitute custom level must be >= 0")
		}
		return nil
	default:
		return fmt.Errorf("unknown substitute kind %q", s.Kind)
	}
}

// Identity is the resolved display name and level for one side, after the
// substitute union has been collapsed.
type Identity struct {
	Name  string
	Level int
}

// Resolve collapses the union into a single identity. roster is the
// rostered player's identity and lookupReserve is consulted only for
// SubstituteReserve.
func (s Substitute) Resolve(roster Identity, lookupReserve func(reserveID int64) (Identity, bool)) (Identity, error) {
	switch s.Kind {
	case SubstituteNone, "":
		return roster, nil
	case SubstituteReserve:
		id, ok := lookupReserve(s.ReserveID)
		if !ok {
			return Identity{}, fmt.Errorf("reserve %d not found", s.ReserveID)
		}
		return id, nil
	case SubstituteCustom:
		return Identity{Name: s.CustomName, Level: s.CustomLevel}, nil
	default:
		return Identity{}, fmt.Errorf("unknown substitute kind %q", s.Kind)
	}
}

// Match is a position-level game inside a weekly matchup. Nil scores mean
// the match has not been played; ScoredAt is set once, on the first score
// entry, and survives later corrections.
type Match struct {
	ID          int64
	MatchupID   int64
	Position    int
	PlayerAID   int64
	PlayerBID   int64
	SubstituteA Substitute
	SubstituteB Substitute
	ScoreA      *int
	ScoreB      *int
	Handicap    int
	ScoredAt    *time.Time
}

// IsScored reports whether both raw scores have been recorded.
func (m Match) IsScored() bool {
	return m.ScoreA != nil && m.ScoreB != nil
}

func (m Match) Validate() error {
	if m.MatchupID <= 0 {
		return fmt.Errorf("match matchup id is required")
	}
	if m.Position < 1 {
		return fmt.Errorf("match position must be >= 1")
	}
	if err := ValidateHandicap(m.Handicap); err != nil {
		return err
	}
	if err := m.SubstituteA.Validate(); err != nil {
		return fmt.Errorf("side A: %w", err)
	}
	if err := m.SubstituteB.Validate(); err != nil {
		return fmt.Errorf("side B: %w", err)
	}
	return nil
}
