package scorestate

import "time"

// New starts a session: side A serves from the right box and must confirm
// the box before the first point, mirroring a real serve start.
func New(matchID int64, playerA, playerB PlayerInfo, now time.Time) State {
	return State{
		MatchID:      matchID,
		PlayerA:      playerA,
		PlayerB:      playerB,
		Server:       SideA,
		ServiceBox:   BoxRight,
		IsHandout:    true,
		PreferredBox: BoxPreferences{A: BoxRight, B: BoxRight},
		MatchStart:   now,
		Status:       StatusInProgress,
	}
}

// ScorePoint applies one point for scorer. The server keeps serve and
// alternates box when they score; otherwise serve hands out to the scorer,
// defaulting to that side's preferred box. Never fails.
func (s State) ScorePoint(scorer Side, at time.Time) State {
	next := s

	if scorer == SideA {
		next.ScoreA++
	} else {
		next.ScoreB++
	}

	event := PointEvent{
		Timestamp:  at,
		Scorer:     scorer,
		ScoreA:     next.ScoreA,
		ScoreB:     next.ScoreB,
		Server:     s.Server,
		ServiceBox: s.ServiceBox,
		IsHandout:  s.IsHandout,
	}

	if scorer == s.Server {
		next.ServiceBox = otherBox(s.ServiceBox)
		next.IsHandout = false
	} else {
		next.Server = scorer
		next.ServiceBox = s.PreferredBox.For(scorer)
		next.IsHandout = true
	}

	history := append(append([]PointEvent(nil), s.History...), event)
	if len(history) > HistoryLimit {
		history = append([]PointEvent(nil), history[len(history)-HistoryLimit:]...)
	}
	next.History = history

	return next
}

// SelectServiceBox is only honored during a handout window; mid-rally the box
// alternates automatically via ScorePoint. The choice becomes the serving
// side's preferred box for future handouts.
func (s State) SelectServiceBox(box Box) State {
	if !s.IsHandout {
		return s
	}

	next := s
	next.ServiceBox = box
	next.IsHandout = false
	next.PreferredBox = s.PreferredBox.with(s.Server, box)
	return next
}

// SetServer overrides who serves, e.g. to correct an error before play
// starts. Scores and history are untouched.
func (s State) SetServer(side Side) State {
	next := s
	next.Server = side
	next.ServiceBox = s.PreferredBox.For(side)
	next.IsHandout = true
	return next
}

// Undo reverts the most recent retained point: serve conditions come from the
// popped event's pre-point snapshot, scores from its post-point totals minus
// that point's contribution. No-op when history is empty.
func (s State) Undo() State {
	n := len(s.History)
	if n == 0 {
		return s
	}

	last := s.History[n-1]
	next := s
	next.ScoreA = last.ScoreA
	next.ScoreB = last.ScoreB
	if last.Scorer == SideA {
		next.ScoreA--
	} else {
		next.ScoreB--
	}
	next.Server = last.Server
	next.ServiceBox = last.ServiceBox
	next.IsHandout = last.IsHandout
	next.History = append([]PointEvent(nil), s.History[:n-1]...)
	return next
}

// Complete marks the session finished ahead of submission.
func (s State) Complete() State {
	next := s
	next.Status = StatusCompleted
	return next
}

// Restore adopts a previously persisted state verbatim; the persisted
// envelope is trusted.
func Restore(saved State) State {
	return saved
}

func otherBox(box Box) Box {
	if box == BoxLeft {
		return BoxRight
	}
	return BoxLeft
}
