package scoring

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/StNick/squash-team-challenge/internal/domain/scorestate"
	"github.com/StNick/squash-team-challenge/internal/platform/kv"
	"github.com/StNick/squash-team-challenge/internal/platform/logging"
)

type fakeSubmitter struct {
	fail    bool
	calls   int
	matchID int64
	scoreA  int
	scoreB  int
}

func (f *fakeSubmitter) SubmitScore(_ context.Context, matchID int64, scoreA, scoreB int) error {
	f.calls++
	f.matchID, f.scoreA, f.scoreB = matchID, scoreA, scoreB
	if f.fail {
		return fmt.Errorf("aggregation unreachable")
	}
	return nil
}

type recordingWakeLock struct {
	acquires int
	releases int
	fail     bool
}

func (w *recordingWakeLock) Acquire() error {
	w.acquires++
	if w.fail {
		return fmt.Errorf("wake lock denied")
	}
	return nil
}

func (w *recordingWakeLock) Release() { w.releases++ }

func newTestController(t *testing.T, submit Submitter, opts ...Option) (*Controller, *SessionStore) {
	t.Helper()
	sessions := newTestSessionStore(t, kv.NewMemoryStore())
	opts = append([]Option{
		WithClock(func() time.Time { return sessionStart }),
		WithLogger(logging.NewNop()),
	}, opts...)
	c := NewController(7,
		scorestate.PlayerInfo{Name: "Alice", TeamColor: "red"},
		scorestate.PlayerInfo{Name: "Bob", TeamColor: "blue"},
		sessions, submit, opts...)
	return c, sessions
}

func TestControllerFreshStart(t *testing.T) {
	t.Parallel()

	wake := &recordingWakeLock{}
	c, sessions := newTestController(t, &fakeSubmitter{}, WithWakeLock(wake))

	if got := c.Start(); got != PhaseScoring {
		t.Fatalf("Start = %s, want scoring", got)
	}
	if wake.acquires != 1 {
		t.Fatalf("wake acquires = %d, want 1", wake.acquires)
	}
	if _, ok := sessions.Load(7); !ok {
		t.Fatal("fresh session not persisted")
	}
}

func TestControllerPersistsAfterEveryMutation(t *testing.T) {
	t.Parallel()

	c, sessions := newTestController(t, &fakeSubmitter{})
	c.Start()

	if err := c.ScorePoint(scorestate.SideA); err != nil {
		t.Fatalf("ScorePoint: %v", err)
	}
	saved, _ := sessions.Load(7)
	if saved.State.ScoreA != 1 {
		t.Fatalf("persisted scoreA = %d, want 1", saved.State.ScoreA)
	}

	if err := c.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	saved, _ = sessions.Load(7)
	if saved.State.ScoreA != 0 {
		t.Fatalf("persisted scoreA after undo = %d, want 0", saved.State.ScoreA)
	}
}

func TestControllerResumePath(t *testing.T) {
	t.Parallel()

	backend := kv.NewMemoryStore()
	sessions := newTestSessionStore(t, backend)
	prior := testState(7)
	prior = prior.ScorePoint(scorestate.SideB, sessionStart.Add(time.Minute))
	sessions.Save(7, prior)

	c := NewController(7,
		scorestate.PlayerInfo{Name: "Alice", TeamColor: "red"},
		scorestate.PlayerInfo{Name: "Bob", TeamColor: "blue"},
		sessions, &fakeSubmitter{},
		WithClock(func() time.Time { return sessionStart.Add(time.Hour) }),
		WithLogger(logging.NewNop()))

	if got := c.Start(); got != PhaseResumePrompt {
		t.Fatalf("Start = %s, want resume_prompt", got)
	}
	if c.PendingSession().State.ScoreA != prior.ScoreA {
		t.Fatalf("pending scoreA = %d, want %d", c.PendingSession().State.ScoreA, prior.ScoreA)
	}

	if got := c.Resume(); got != PhaseScoring {
		t.Fatalf("Resume = %s, want scoring", got)
	}
	if c.State().ScoreA != prior.ScoreA || c.State().ScoreB != prior.ScoreB {
		t.Fatalf("resumed state = %d-%d, want %d-%d",
			c.State().ScoreA, c.State().ScoreB, prior.ScoreA, prior.ScoreB)
	}
}

func TestControllerStartFreshDiscardsPending(t *testing.T) {
	t.Parallel()

	sessions := newTestSessionStore(t, kv.NewMemoryStore())
	sessions.Save(7, testState(7))

	c := NewController(7,
		scorestate.PlayerInfo{Name: "Alice", TeamColor: "red"},
		scorestate.PlayerInfo{Name: "Bob", TeamColor: "blue"},
		sessions, &fakeSubmitter{},
		WithClock(func() time.Time { return sessionStart }),
		WithLogger(logging.NewNop()))

	if got := c.Start(); got != PhaseResumePrompt {
		t.Fatalf("Start = %s, want resume_prompt", got)
	}
	if got := c.StartFresh(); got != PhaseScoring {
		t.Fatalf("StartFresh = %s, want scoring", got)
	}
	if c.State().ScoreA != 0 || len(c.State().History) != 0 {
		t.Fatalf("fresh state carries old points: %+v", c.State())
	}
}

func TestControllerConfirmEndSuccess(t *testing.T) {
	t.Parallel()

	submit := &fakeSubmitter{}
	wake := &recordingWakeLock{}
	c, sessions := newTestController(t, submit, WithWakeLock(wake))
	c.Start()
	c.ScorePoint(scorestate.SideA)
	c.ScorePoint(scorestate.SideA)
	c.ScorePoint(scorestate.SideB)

	if err := c.RequestEnd(); err != nil {
		t.Fatalf("RequestEnd: %v", err)
	}
	if err := c.ConfirmEnd(context.Background()); err != nil {
		t.Fatalf("ConfirmEnd: %v", err)
	}

	if submit.calls != 1 || submit.matchID != 7 || submit.scoreA != 2 || submit.scoreB != 1 {
		t.Fatalf("submitted %+v", submit)
	}
	if c.Phase() != PhaseClosed {
		t.Fatalf("phase = %s, want closed", c.Phase())
	}
	if _, ok := sessions.Load(7); ok {
		t.Fatal("session not cleared after successful submission")
	}
	if wake.releases != 1 {
		t.Fatalf("wake releases = %d, want 1", wake.releases)
	}
}

func TestControllerConfirmEndFailureKeepsSession(t *testing.T) {
	t.Parallel()

	submit := &fakeSubmitter{fail: true}
	c, sessions := newTestController(t, submit)
	c.Start()
	c.ScorePoint(scorestate.SideA)
	c.RequestEnd()

	if err := c.ConfirmEnd(context.Background()); err == nil {
		t.Fatal("ConfirmEnd = nil, want error")
	}
	if c.Phase() != PhaseConfirmEnd {
		t.Fatalf("phase = %s, want confirm_end for retry", c.Phase())
	}
	if _, ok := sessions.Load(7); !ok {
		t.Fatal("session cleared despite failed submission")
	}

	submit.fail = false
	if err := c.ConfirmEnd(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if submit.calls != 2 || c.Phase() != PhaseClosed {
		t.Fatalf("retry calls=%d phase=%s", submit.calls, c.Phase())
	}
}

func TestControllerCancelEnd(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(t, &fakeSubmitter{})
	c.Start()
	c.ScorePoint(scorestate.SideA)
	c.RequestEnd()

	if err := c.CancelEnd(); err != nil {
		t.Fatalf("CancelEnd: %v", err)
	}
	if c.Phase() != PhaseScoring {
		t.Fatalf("phase = %s, want scoring", c.Phase())
	}
	if err := c.ScorePoint(scorestate.SideB); err != nil {
		t.Fatalf("scoring after cancel: %v", err)
	}
}

func TestControllerCloseClearsOnlyPointlessSessions(t *testing.T) {
	t.Parallel()

	c, sessions := newTestController(t, &fakeSubmitter{})
	c.Start()
	c.Close()
	if _, ok := sessions.Load(7); ok {
		t.Fatal("pointless session survived close")
	}

	c2, sessions2 := newTestController(t, &fakeSubmitter{})
	c2.Start()
	c2.ScorePoint(scorestate.SideA)
	c2.Close()
	if _, ok := sessions2.Load(7); !ok {
		t.Fatal("session with points cleared on close")
	}
}

func TestControllerVisibilityIdempotent(t *testing.T) {
	t.Parallel()

	wake := &recordingWakeLock{}
	c, _ := newTestController(t, &fakeSubmitter{}, WithWakeLock(wake))
	c.Start()

	c.HandleVisibility(true)
	c.HandleVisibility(true)
	if wake.acquires != 1 {
		t.Fatalf("visible while held acquired again: %d", wake.acquires)
	}

	c.HandleVisibility(false)
	c.HandleVisibility(false)
	if wake.releases != 1 {
		t.Fatalf("hidden while released released again: %d", wake.releases)
	}

	c.HandleVisibility(true)
	if wake.acquires != 2 {
		t.Fatalf("re-acquire on visible: %d", wake.acquires)
	}
}

func TestControllerWakeLockFailureNonFatal(t *testing.T) {
	t.Parallel()

	wake := &recordingWakeLock{fail: true}
	c, _ := newTestController(t, &fakeSubmitter{}, WithWakeLock(wake))

	if got := c.Start(); got != PhaseScoring {
		t.Fatalf("Start with failing wake lock = %s, want scoring", got)
	}
	if err := c.ScorePoint(scorestate.SideA); err != nil {
		t.Fatalf("ScorePoint: %v", err)
	}
}

func TestControllerRejectsActionsOutsideScoring(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(t, &fakeSubmitter{})
	if err := c.ScorePoint(scorestate.SideA); err == nil {
		t.Fatal("ScorePoint before Start = nil, want error")
	}
	if err := c.ConfirmEnd(context.Background()); err == nil {
		t.Fatal("ConfirmEnd before Start = nil, want error")
	}
}
