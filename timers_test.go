package gf1

import (
	"testing"
	"time"
)

// fakeScheduler records the last scheduled callback per slot and lets a
// test fire it deterministically instead of waiting on the wall clock.
type fakeScheduler struct {
	pending []func()
}

func (s *fakeScheduler) Schedule(d time.Duration, fn func()) func() {
	idx := len(s.pending)
	s.pending = append(s.pending, fn)
	return func() { s.pending[idx] = nil }
}

func (s *fakeScheduler) fireAll() {
	pending := s.pending
	s.pending = nil
	for _, fn := range pending {
		if fn != nil {
			fn()
		}
	}
}

func TestTimersExpirySetsReachedAndRearms(t *testing.T) {
	sched := &fakeScheduler{}
	tm := NewTimers(sched, nil)

	tm.WriteCommand(0x01) // start timer 0
	if len(sched.pending) != 1 {
		t.Fatalf("got %d scheduled callbacks, want 1", len(sched.pending))
	}

	sched.fireAll()
	if !tm.t[0].reached {
		t.Fatal("timer 0 must set its reached flag on expiry")
	}
	if len(sched.pending) != 1 {
		t.Fatal("a running timer must re-arm itself after expiry")
	}
}

func TestTimersMaskedExpirySuppressesReached(t *testing.T) {
	sched := &fakeScheduler{}
	tm := NewTimers(sched, nil)

	tm.WriteCommand(0x41) // mask timer 0 (bit 6), start timer 0 (bit 0)
	sched.fireAll()
	if tm.t[0].reached {
		t.Fatal("a masked timer must not set its reached flag on expiry")
	}
}

func TestTimersRaiseIRQCallsOnExpire(t *testing.T) {
	sched := &fakeScheduler{}
	var fired []int
	tm := NewTimers(sched, func(i int) { fired = append(fired, i) })

	tm.WriteControl(0x04) // arm timer 0's raise-IRQ flag
	tm.WriteCommand(0x01) // start timer 0
	sched.fireAll()

	if len(fired) != 1 || fired[0] != 0 {
		t.Fatalf("onExpire calls = %v, want [0]", fired)
	}
}

func TestTimersWriteControlReportsBitsToClear(t *testing.T) {
	sched := &fakeScheduler{}
	tm := NewTimers(sched, nil)

	tm.WriteControl(0x0c) // both raise-IRQ flags set
	if clear0, clear1 := tm.WriteControl(0x0c); clear0 || clear1 {
		t.Fatal("enabling raise-IRQ must not ask the caller to clear its bit")
	}
	if clear0, clear1 := tm.WriteControl(0x00); !clear0 || !clear1 {
		t.Fatal("disabling raise-IRQ must ask the caller to clear both bits")
	}
}

func TestTimersStatusByteAggregatesReachedFlags(t *testing.T) {
	sched := &fakeScheduler{}
	tm := NewTimers(sched, nil)
	tm.WriteCommand(0x01)
	sched.fireAll()

	b := tm.StatusByte()
	if b&(1<<6) == 0 {
		t.Fatal("timer 0's reached bit must be set")
	}
	if b&(1<<7) == 0 {
		t.Fatal("the summary bit must be set whenever either reached flag is")
	}
}

func TestTimersStopClearsRunningAndCancelsSchedule(t *testing.T) {
	sched := &fakeScheduler{}
	tm := NewTimers(sched, nil)
	tm.WriteCommand(0x01)
	tm.WriteCommand(0x00) // stop timer 0

	sched.fireAll()
	if tm.t[0].reached {
		t.Fatal("a stopped timer's cancelled callback must not fire")
	}
}

func TestTimersResetStopsAndReloads(t *testing.T) {
	sched := &fakeScheduler{}
	tm := NewTimers(sched, nil)
	tm.WriteValue(0, 0x10)
	tm.WriteCommand(0x01)

	tm.Reset()

	if tm.t[0].running {
		t.Fatal("Reset must stop both timers")
	}
	if tm.t[0].value != 0xff {
		t.Fatalf("timer 0 value after Reset = %#x, want 0xff", tm.t[0].value)
	}
}

