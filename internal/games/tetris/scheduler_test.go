package tetris

import (
	"reflect"
	"testing"
	"time"

	"github.com/outwit/tetris-challenge/internal/config"
)

func TestSchedulerInertUntilRunning(t *testing.T) {
	s := newTestSession(20, 10, config.DefaultTunables())
	redraws := 0
	sc := NewScheduler(s, func() { redraws++ })

	res := sc.OnRefresh(5 * time.Second)
	if res.Changed {
		t.Error("refresh before start should not change state")
	}
	if sc.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, expected 0 while not running", sc.Elapsed())
	}
	if redraws != 1 {
		t.Errorf("redraws = %d, expected 1", redraws)
	}
}

func TestSchedulerFiresAfterInterval(t *testing.T) {
	s := newTestSession(20, 10, config.Tunables{DropSpeedMs: 100, PointsPerRow: 100, WinScore: 1000})
	redraws := 0
	sc := NewScheduler(s, func() { redraws++ })
	s.Apply(EventStart)
	y := s.Active().Y

	// Exactly the interval is not enough.
	sc.OnRefresh(60 * time.Millisecond)
	sc.OnRefresh(40 * time.Millisecond)
	if s.Active().Y != y {
		t.Fatalf("gravity fired at exactly the interval")
	}

	res := sc.OnRefresh(time.Millisecond)
	if !res.Changed || s.Active().Y != y+1 {
		t.Fatalf("gravity should fire once elapsed exceeds the interval")
	}
	if sc.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, expected reset after a tick", sc.Elapsed())
	}
	if redraws != 3 {
		t.Errorf("redraws = %d, expected one per refresh", redraws)
	}
}

func TestSchedulerSoftDrop(t *testing.T) {
	s := newTestSession(20, 10, config.DefaultTunables())
	sc := NewScheduler(s, nil)
	s.Apply(EventStart)
	s.Apply(EventSoftDropStart)
	y := s.Active().Y

	sc.OnRefresh(config.FastDropInterval + time.Millisecond)
	if s.Active().Y != y+1 {
		t.Errorf("soft drop should fall after %v", config.FastDropInterval)
	}

	s.Apply(EventSoftDropStop)
	sc.OnRefresh(config.FastDropInterval + time.Millisecond)
	if s.Active().Y != y+1 {
		t.Error("released soft drop should use the level interval")
	}
}

func TestSchedulerPauseResetsClock(t *testing.T) {
	s := newTestSession(20, 10, config.DefaultTunables())
	sc := NewScheduler(s, nil)
	s.Apply(EventStart)

	sc.OnRefresh(900 * time.Millisecond)
	s.Apply(EventPauseToggle)
	sc.OnRefresh(10 * time.Second)
	if s.Active().Y != 0 {
		t.Fatal("gravity fired while paused")
	}

	s.Apply(EventPauseToggle)
	sc.OnRefresh(900 * time.Millisecond)
	if s.Active().Y != 0 {
		t.Error("clock should restart after a pause")
	}
	sc.OnRefresh(200 * time.Millisecond)
	if s.Active().Y != 1 {
		t.Error("gravity should resume after the interval")
	}
}

func TestSchedulerIgnoresNegativeElapsed(t *testing.T) {
	s := newTestSession(20, 10, config.DefaultTunables())
	sc := NewScheduler(s, nil)
	s.Apply(EventStart)

	sc.OnRefresh(500 * time.Millisecond)
	sc.OnRefresh(-time.Hour)
	if sc.Elapsed() != 500*time.Millisecond {
		t.Errorf("Elapsed() = %v, expected 500ms", sc.Elapsed())
	}
}

func TestSchedulerStop(t *testing.T) {
	s := newTestSession(20, 10, config.DefaultTunables())
	redraws := 0
	sc := NewScheduler(s, func() { redraws++ })
	s.Apply(EventStart)
	sc.OnRefresh(100 * time.Millisecond)

	before := s.Snapshot()
	sc.Stop()
	sc.Stop()

	for range 5 {
		if res := sc.OnRefresh(time.Minute); res.Changed {
			t.Fatal("refresh after Stop changed state")
		}
	}
	if !reflect.DeepEqual(s.Snapshot(), before) {
		t.Error("session mutated after Stop")
	}
	if redraws != 1 {
		t.Errorf("redraws = %d, expected none after Stop", redraws)
	}
	if !sc.Stopped() {
		t.Error("Stopped() = false after Stop")
	}
}
