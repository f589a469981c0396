package scorestate

import (
	"reflect"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
)

var testStart = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

func newTestState() State {
	return New(7,
		PlayerInfo{Name: "Alice", TeamColor: "red"},
		PlayerInfo{Name: "Bob", TeamColor: "blue"},
		testStart,
	)
}

func TestNew_InitialState(t *testing.T) {
	t.Parallel()

	s := newTestState()
	if s.ScoreA != 0 || s.ScoreB != 0 {
		t.Fatalf("unexpected initial scores: %d-%d", s.ScoreA, s.ScoreB)
	}
	if s.Server != SideA {
		t.Fatalf("side A must serve first, got %s", s.Server)
	}
	if s.ServiceBox != BoxRight {
		t.Fatalf("initial service box must be R, got %s", s.ServiceBox)
	}
	if !s.IsHandout {
		t.Fatalf("the opening serve must start in a handout window")
	}
	if len(s.History) != 0 {
		t.Fatalf("history must start empty, got %d entries", len(s.History))
	}
	if s.Status != StatusInProgress {
		t.Fatalf("unexpected status %s", s.Status)
	}
}

func TestScorePoint_ServerRetainsServe(t *testing.T) {
	t.Parallel()

	s := newTestState().SelectServiceBox(BoxRight)
	next := s.ScorePoint(SideA, testStart.Add(time.Minute))

	if next.ScoreA != 1 || next.ScoreB != 0 {
		t.Fatalf("unexpected scores: %d-%d", next.ScoreA, next.ScoreB)
	}
	if next.Server != SideA {
		t.Fatalf("server must retain serve, got %s", next.Server)
	}
	if next.ServiceBox != BoxLeft {
		t.Fatalf("service box must alternate R->L, got %s", next.ServiceBox)
	}
	if next.IsHandout {
		t.Fatalf("retained serve must not open a handout window")
	}
}

func TestScorePoint_HandoutPassesServeToScorer(t *testing.T) {
	t.Parallel()

	s := newTestState()
	next := s.ScorePoint(SideB, testStart.Add(time.Minute))

	if next.Server != SideB {
		t.Fatalf("serve must pass to the scorer, got %s", next.Server)
	}
	if !next.IsHandout {
		t.Fatalf("handout flag must be set when serve changes hands")
	}
	if next.ServiceBox != BoxRight {
		t.Fatalf("new server must default to their preferred box R, got %s", next.ServiceBox)
	}
}

func TestScorePoint_HandoutUsesPreferredBox(t *testing.T) {
	t.Parallel()

	// B claims the serve once, picks the left box, then loses it again.
	s := newTestState().
		ScorePoint(SideB, testStart).
		SelectServiceBox(BoxLeft).
		ScorePoint(SideA, testStart).
		ScorePoint(SideB, testStart)

	if s.Server != SideB {
		t.Fatalf("expected server B, got %s", s.Server)
	}
	if s.ServiceBox != BoxLeft {
		t.Fatalf("handout back to B must default to their chosen box L, got %s", s.ServiceBox)
	}
}

func TestScorePoint_RecordsPrePointServeConditions(t *testing.T) {
	t.Parallel()

	s := newTestState()
	next := s.ScorePoint(SideB, testStart.Add(time.Minute))

	event := next.History[len(next.History)-1]
	if event.Server != SideA || event.ServiceBox != BoxRight || !event.IsHandout {
		t.Fatalf("event must capture pre-point serve conditions, got %+v", event)
	}
	if event.ScoreA != 0 || event.ScoreB != 1 {
		t.Fatalf("event must capture post-point scores, got %d-%d", event.ScoreA, event.ScoreB)
	}
}

func TestUndo_RoundTripsScorePoint(t *testing.T) {
	t.Parallel()

	// Exercise the round-trip from several distinct serve situations.
	base := newTestState()
	states := []State{
		base,
		base.SelectServiceBox(BoxLeft),
		base.ScorePoint(SideA, testStart).ScorePoint(SideB, testStart),
		base.ScorePoint(SideB, testStart).SelectServiceBox(BoxLeft),
		base.SetServer(SideB),
	}

	for i, s := range states {
		for _, scorer := range []Side{SideA, SideB} {
			got := s.ScorePoint(scorer, testStart.Add(time.Hour)).Undo()
			if !reflect.DeepEqual(got, s) {
				t.Fatalf("state %d scorer %s: undo after score must restore the prior state\n got: %+v\nwant: %+v", i, scorer, got, s)
			}
		}
	}
}

func TestUndo_EmptyHistoryIsNoop(t *testing.T) {
	t.Parallel()

	s := newTestState()
	if got := s.Undo(); !reflect.DeepEqual(got, s) {
		t.Fatalf("undo on empty history must be a no-op")
	}
}

func TestScorePoint_ScoreConservation(t *testing.T) {
	t.Parallel()

	s := newTestState()
	scorers := []Side{SideA, SideB, SideB, SideA, SideA, SideA, SideB}
	for _, scorer := range scorers {
		s = s.ScorePoint(scorer, testStart)
	}
	if s.ScoreA+s.ScoreB != len(scorers) {
		t.Fatalf("score conservation violated: %d+%d != %d", s.ScoreA, s.ScoreB, len(scorers))
	}
}

func TestScorePoint_HistoryBound(t *testing.T) {
	t.Parallel()

	s := newTestState()
	const points = HistoryLimit + 23
	for i := 0; i < points; i++ {
		s = s.ScorePoint(SideA, testStart.Add(time.Duration(i)*time.Second))
	}

	if len(s.History) != HistoryLimit {
		t.Fatalf("history must be capped at %d, got %d", HistoryLimit, len(s.History))
	}
	if s.ScoreA != points {
		t.Fatalf("truncation must not affect scores: got %d want %d", s.ScoreA, points)
	}
	// The retained entries are the most recent ones.
	first := s.History[0]
	if first.ScoreA != points-HistoryLimit+1 {
		t.Fatalf("oldest retained event has score %d, want %d", first.ScoreA, points-HistoryLimit+1)
	}
	last := s.History[len(s.History)-1]
	if last.ScoreA != points {
		t.Fatalf("newest retained event has score %d, want %d", last.ScoreA, points)
	}
}

func TestSelectServiceBox_GatedOnHandout(t *testing.T) {
	t.Parallel()

	// Mid-rally (no handout) the box cannot be chosen.
	s := newTestState().SelectServiceBox(BoxRight).ScorePoint(SideA, testStart)
	if s.IsHandout {
		t.Fatalf("precondition: no handout window expected")
	}
	if got := s.SelectServiceBox(BoxLeft); !reflect.DeepEqual(got, s) {
		t.Fatalf("box selection outside a handout window must be a no-op")
	}

	// During a handout the choice applies and clears the window.
	handout := s.ScorePoint(SideB, testStart)
	chosen := handout.SelectServiceBox(BoxLeft)
	if chosen.ServiceBox != BoxLeft || chosen.IsHandout {
		t.Fatalf("box selection during handout must apply: %+v", chosen)
	}
	if chosen.PreferredBox.For(SideB) != BoxLeft {
		t.Fatalf("chosen box must become the serving side's preferred box")
	}
}

func TestSetServer_CorrectionDoesNotTouchScores(t *testing.T) {
	t.Parallel()

	s := newTestState().ScorePoint(SideA, testStart)
	corrected := s.SetServer(SideB)

	if corrected.Server != SideB || !corrected.IsHandout {
		t.Fatalf("set server must hand serve to the chosen side with a handout window: %+v", corrected)
	}
	if corrected.ScoreA != s.ScoreA || corrected.ScoreB != s.ScoreB {
		t.Fatalf("set server must not change scores")
	}
	if len(corrected.History) != len(s.History) {
		t.Fatalf("set server must not change history")
	}
}

func TestScenario_AliceBobWithUndo(t *testing.T) {
	t.Parallel()

	s := newTestState()
	for i := 0; i < 3; i++ {
		s = s.ScorePoint(SideA, testStart.Add(time.Duration(i)*time.Minute))
	}
	s = s.ScorePoint(SideB, testStart.Add(4*time.Minute))
	s = s.ScorePoint(SideB, testStart.Add(5*time.Minute))
	s = s.Undo()

	if s.ScoreA != 3 || s.ScoreB != 1 {
		t.Fatalf("unexpected scores after undo: %d-%d", s.ScoreA, s.ScoreB)
	}
	if s.Server != SideB {
		t.Fatalf("server must be B after undo, got %s", s.Server)
	}
	if len(s.History) != 4 {
		t.Fatalf("unexpected history length: %d", len(s.History))
	}
	// Per the round-trip law this is the state right after B's first point:
	// a fresh handout to B on their default box.
	if !s.IsHandout || s.ServiceBox != BoxRight {
		t.Fatalf("undo must restore the handout window of B's first point: handout=%v box=%s", s.IsHandout, s.ServiceBox)
	}
}

func TestState_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestState().
		ScorePoint(SideA, testStart.Add(time.Minute)).
		ScorePoint(SideB, testStart.Add(2*time.Minute)).
		SelectServiceBox(BoxLeft)

	raw, err := sonic.Marshal(s)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}

	var got State
	if err := sonic.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if !reflect.DeepEqual(Restore(got), s) {
		t.Fatalf("state must round-trip through JSON\n got: %+v\nwant: %+v", got, s)
	}
}
