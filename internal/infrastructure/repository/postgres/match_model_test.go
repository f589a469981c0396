package postgres

import (
	"database/sql"
	"testing"

	"github.com/StNick/squash-team-challenge/internal/domain/match"
)

func TestSubstituteColumnsRoundTrip(t *testing.T) {
	t.Parallel()

	subs := []match.Substitute{
		{Kind: match.SubstituteNone},
		{Kind: match.SubstituteReserve, ReserveID: 12},
		{Kind: match.SubstituteCustom, CustomName: "Guest", CustomLevel: 30},
	}
	for _, sub := range subs {
		kind, reserveID, name, level := substituteColumns(sub)
		if got := substituteFromColumns(kind, reserveID, name, level); got != sub {
			t.Fatalf("round trip: got %+v, want %+v", got, sub)
		}
	}

	// zero-value kind persists as none
	kind, _, _, _ := substituteColumns(match.Substitute{})
	if kind != string(match.SubstituteNone) {
		t.Fatalf("zero substitute kind = %q", kind)
	}
}

func TestNullableScore(t *testing.T) {
	t.Parallel()

	if got := nullableScore(sql.NullInt64{}); got != nil {
		t.Fatalf("null score = %v, want nil", got)
	}
	got := nullableScore(sql.NullInt64{Int64: 11, Valid: true})
	if got == nil || *got != 11 {
		t.Fatalf("score = %v, want 11", got)
	}
}
