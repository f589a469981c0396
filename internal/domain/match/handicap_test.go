package match

import "testing"

func TestAdjustScores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		scoreA, scoreB int
		handicap       int
		wantA, wantB   int
	}{
		{name: "zero handicap leaves scores alone", scoreA: 10, scoreB: 5, handicap: 0, wantA: 10, wantB: 5},
		{name: "positive handicap discounts A", scoreA: 10, scoreB: 5, handicap: 20, wantA: 8, wantB: 5},
		{name: "negative handicap discounts B", scoreA: 10, scoreB: 5, handicap: -20, wantA: 10, wantB: 4},
		{name: "half rounds away from zero", scoreA: 10, scoreB: 0, handicap: 15, wantA: 9, wantB: 0},
		{name: "submitted scenario", scoreA: 11, scoreB: 9, handicap: 10, wantA: 10, wantB: 9},
		{name: "full discount", scoreA: 20, scoreB: 3, handicap: 50, wantA: 10, wantB: 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gotA, gotB := AdjustScores(tc.scoreA, tc.scoreB, tc.handicap)
			if gotA != tc.wantA || gotB != tc.wantB {
				t.Fatalf("AdjustScores(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tc.scoreA, tc.scoreB, tc.handicap, gotA, gotB, tc.wantA, tc.wantB)
			}
		})
	}
}

func TestSuggestedHandicap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		levelA, levelB int
		want           int
	}{
		{name: "equal levels", levelA: 40, levelB: 40, want: 0},
		{name: "small gap rounds to nearest step", levelA: 46, levelB: 40, want: 5},
		{name: "gap below half step rounds to zero", levelA: 44, levelB: 40, want: 0},
		{name: "thirty level gap", levelA: 70, levelB: 40, want: 15},
		{name: "direction does not matter", levelA: 40, levelB: 70, want: 15},
		{name: "capped at fifty", levelA: 200, levelB: 40, want: MaxHandicap},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := SuggestedHandicap(tc.levelA, tc.levelB)
			if got != tc.want {
				t.Fatalf("SuggestedHandicap(%d, %d) = %d, want %d", tc.levelA, tc.levelB, got, tc.want)
			}
		})
	}
}

func TestValidateScoreBounds(t *testing.T) {
	t.Parallel()

	if err := ValidateScore(0); err != nil {
		t.Fatalf("ValidateScore(0) = %v, want nil", err)
	}
	if err := ValidateScore(MaxScore); err != nil {
		t.Fatalf("ValidateScore(%d) = %v, want nil", MaxScore, err)
	}
	if err := ValidateScore(-1); err == nil {
		t.Fatal("ValidateScore(-1) = nil, want error")
	}
	if err := ValidateScore(MaxScore + 1); err == nil {
		t.Fatalf("ValidateScore(%d) = nil, want error", MaxScore+1)
	}
	if err := ValidateHandicap(-MaxHandicap - 1); err == nil {
		t.Fatal("ValidateHandicap below range = nil, want error")
	}
	if err := ValidateHandicap(MaxHandicap); err != nil {
		t.Fatalf("ValidateHandicap(%d) = %v, want nil", MaxHandicap, err)
	}
}

func TestSubstituteResolve(t *testing.T) {
	t.Parallel()

	roster := Identity{Name: "Rostered", Level: 40}
	reserves := func(id int64) (Identity, bool) {
		if id == 3 {
			return Identity{Name: "Reserve", Level: 55}, true
		}
		return Identity{}, false
	}

	got, err := Substitute{}.Resolve(roster, reserves)
	if err != nil || got != roster {
		t.Fatalf("none: got (%+v, %v), want roster identity", got, err)
	}

	got, err = Substitute{Kind: SubstituteReserve, ReserveID: 3}.Resolve(roster, reserves)
	if err != nil || got.Name != "Reserve" || got.Level != 55 {
		t.Fatalf("reserve: got (%+v, %v)", got, err)
	}

	if _, err = (Substitute{Kind: SubstituteReserve, ReserveID: 9}).Resolve(roster, reserves); err == nil {
		t.Fatal("missing reserve: want error")
	}

	got, err = Substitute{Kind: SubstituteCustom, CustomName: "Guest", CustomLevel: 25}.Resolve(roster, reserves)
	if err != nil || got.Name != "Guest" || got.Level != 25 {
		t.Fatalf("custom: got (%+v, %v)", got, err)
	}
}
