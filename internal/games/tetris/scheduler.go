package tetris

import "time"

// Scheduler turns refresh ticks into gravity ticks. It is driven by the
// platform's frame loop and measures actual elapsed time, so dropped
// frames do not slow the game down.
type Scheduler struct {
	session  *Session
	elapsed  time.Duration
	stopped  bool
	onRedraw func()
}

// NewScheduler binds a scheduler to a session. onRedraw may be nil.
func NewScheduler(s *Session, onRedraw func()) *Scheduler {
	return &Scheduler{session: s, onRedraw: onRedraw}
}

// OnRefresh advances the gravity clock by elapsed. When the accumulated
// time exceeds the session's effective interval it applies one gravity
// tick and restarts the clock. The clock does not run while the session
// is not running. After Stop it does nothing.
func (sc *Scheduler) OnRefresh(elapsed time.Duration) Result {
	if sc.stopped {
		return Result{}
	}

	var res Result
	if sc.session.Phase() != PhaseRunning {
		sc.elapsed = 0
	} else {
		if elapsed > 0 {
			sc.elapsed += elapsed
		}
		if sc.elapsed > sc.session.EffectiveInterval() {
			sc.elapsed = 0
			res = sc.session.Apply(EventGravityTick)
		}
	}

	if sc.onRedraw != nil {
		sc.onRedraw()
	}
	return res
}

// Stop cancels all future refreshes. It is safe to call more than once.
func (sc *Scheduler) Stop() {
	sc.stopped = true
}

// Stopped reports whether Stop was called.
func (sc *Scheduler) Stopped() bool {
	return sc.stopped
}

// Elapsed returns the time accumulated towards the next gravity tick.
func (sc *Scheduler) Elapsed() time.Duration {
	return sc.elapsed
}
