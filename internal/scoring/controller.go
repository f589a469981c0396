package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/StNick/squash-team-challenge/internal/domain/scorestate"
	"github.com/StNick/squash-team-challenge/internal/platform/logging"
)

// Phase is the controller's lifecycle state.
type Phase string

const (
	PhaseCheckingSession Phase = "checking_session"
	PhaseResumePrompt    Phase = "resume_prompt"
	PhaseScoring         Phase = "scoring"
	PhaseConfirmEnd      Phase = "confirm_end"
	PhaseClosed          Phase = "closed"
)

// Submitter hands the final scores to the aggregation pipeline. The
// scoreapi client implements it.
type Submitter interface {
	SubmitScore(ctx context.Context, matchID int64, scoreA, scoreB int) error
}

// Controller hosts one live scoring session: it owns the engine state,
// persists it after every mutation, and drives the
// checking_session → resume_prompt/scoring → confirm_end → closed
// lifecycle.
type Controller struct {
	matchID  int64
	playerA  scorestate.PlayerInfo
	playerB  scorestate.PlayerInfo
	sessions *SessionStore
	submit   Submitter
	wake     WakeLock
	logger   *logging.Logger
	now      func() time.Time

	phase    Phase
	state    scorestate.State
	pending  StoredSession
	wakeHeld bool
}

// Option tweaks a Controller; used for wake locks and test clocks.
type Option func(*Controller)

func WithWakeLock(lock WakeLock) Option {
	return func(c *Controller) { c.wake = lock }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithLogger(logger *logging.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

func NewController(matchID int64, playerA, playerB scorestate.PlayerInfo, sessions *SessionStore, submit Submitter, opts ...Option) *Controller {
	c := &Controller{
		matchID:  matchID,
		playerA:  playerA,
		playerB:  playerB,
		sessions: sessions,
		submit:   submit,
		wake:     NopWakeLock{},
		logger:   logging.Default(),
		now:      time.Now,
		phase:    PhaseCheckingSession,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Phase() Phase            { return c.phase }
func (c *Controller) State() scorestate.State { return c.state }

// PendingSession returns the resumable session found by Start, valid only
// in the resume_prompt phase.
func (c *Controller) PendingSession() StoredSession { return c.pending }

// Start checks for a resumable session. A fresh in_progress session moves
// the controller to resume_prompt; otherwise scoring begins immediately
// with a new engine state.
func (c *Controller) Start() Phase {
	if c.phase != PhaseCheckingSession {
		return c.phase
	}

	if saved, ok := c.sessions.LoadIfFresh(c.matchID); ok && saved.State.Status == scorestate.StatusInProgress {
		c.pending = saved
		c.phase = PhaseResumePrompt
		return c.phase
	}
	c.beginFresh()
	return c.phase
}

// Resume continues the pending session found by Start.
func (c *Controller) Resume() Phase {
	if c.phase != PhaseResumePrompt {
		return c.phase
	}
	c.state = scorestate.Restore(c.pending.State)
	c.pending = StoredSession{}
	c.enterScoring()
	return c.phase
}

// StartFresh discards the pending session and begins a new one.
func (c *Controller) StartFresh() Phase {
	if c.phase != PhaseResumePrompt {
		return c.phase
	}
	c.sessions.Clear(c.matchID)
	c.pending = StoredSession{}
	c.beginFresh()
	return c.phase
}

func (c *Controller) beginFresh() {
	c.state = scorestate.New(c.matchID, c.playerA, c.playerB, c.now())
	c.sessions.Save(c.matchID, c.state)
	c.enterScoring()
}

func (c *Controller) enterScoring() {
	c.phase = PhaseScoring
	c.acquireWake()
}

func (c *Controller) ScorePoint(scorer scorestate.Side) error {
	return c.mutate(func(s scorestate.State) scorestate.State {
		return s.ScorePoint(scorer, c.now())
	})
}

func (c *Controller) SelectServiceBox(box scorestate.Box) error {
	return c.mutate(func(s scorestate.State) scorestate.State {
		return s.SelectServiceBox(box)
	})
}

func (c *Controller) SetServer(server scorestate.Side) error {
	return c.mutate(func(s scorestate.State) scorestate.State {
		return s.SetServer(server)
	})
}

func (c *Controller) Undo() error {
	return c.mutate(func(s scorestate.State) scorestate.State {
		return s.Undo()
	})
}

func (c *Controller) mutate(transition func(scorestate.State) scorestate.State) error {
	if c.phase != PhaseScoring {
		return fmt.Errorf("scoring action in phase %s", c.phase)
	}
	c.state = transition(c.state)
	c.sessions.Save(c.matchID, c.state)
	return nil
}

// RequestEnd opens the end-of-match confirmation.
func (c *Controller) RequestEnd() error {
	if c.phase != PhaseScoring {
		return fmt.Errorf("end request in phase %s", c.phase)
	}
	c.phase = PhaseConfirmEnd
	return nil
}

// CancelEnd returns from the confirmation back to scoring.
func (c *Controller) CancelEnd() error {
	if c.phase != PhaseConfirmEnd {
		return fmt.Errorf("cancel end in phase %s", c.phase)
	}
	c.enterScoring()
	return nil
}

// ConfirmEnd submits the final scores. On success the session is cleared
// and the controller closes; on failure it stays in confirm_end with the
// session intact so the operator can retry.
func (c *Controller) ConfirmEnd(ctx context.Context) error {
	if c.phase != PhaseConfirmEnd {
		return fmt.Errorf("confirm end in phase %s", c.phase)
	}

	if err := c.submit.SubmitScore(ctx, c.matchID, c.state.ScoreA, c.state.ScoreB); err != nil {
		c.logger.WarnContext(ctx, "score submission failed",
			"matchID", c.matchID, "scoreA", c.state.ScoreA, "scoreB", c.state.ScoreB, "error", err)
		return fmt.Errorf("submit score for match %d: %w", c.matchID, err)
	}

	c.state = c.state.Complete()
	c.sessions.Clear(c.matchID)
	c.phase = PhaseClosed
	c.releaseWake()
	return nil
}

// Close exits without submitting. A session with no points recorded is
// cleared; one with points stays persisted so it can be resumed later.
func (c *Controller) Close() {
	if c.phase == PhaseClosed {
		return
	}
	if c.phase == PhaseScoring || c.phase == PhaseConfirmEnd {
		if len(c.state.History) == 0 && c.state.ScoreA == 0 && c.state.ScoreB == 0 {
			c.sessions.Clear(c.matchID)
		}
	}
	c.phase = PhaseClosed
	c.releaseWake()
}

// HandleVisibility reacts to the device being backgrounded or shown
// again, releasing and re-acquiring the wake lock. Repeated calls with
// the same visibility are no-ops.
func (c *Controller) HandleVisibility(visible bool) {
	if c.phase != PhaseScoring {
		return
	}
	if visible {
		c.acquireWake()
	} else {
		c.releaseWake()
	}
}

func (c *Controller) acquireWake() {
	if c.wakeHeld {
		return
	}
	if err := c.wake.Acquire(); err != nil {
		c.logger.Debug("wake lock unavailable", "matchID", c.matchID, "error", err)
		return
	}
	c.wakeHeld = true
}

func (c *Controller) releaseWake() {
	if !c.wakeHeld {
		return
	}
	c.wake.Release()
	c.wakeHeld = false
}
