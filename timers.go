package gf1

import "time"

// Scheduler lets Timers be driven by a real clock in production and a
// controllable fake in tests. Schedule arranges for fn to run once
// after d and returns a function that cancels it.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// realScheduler schedules against the host's wall clock.
type realScheduler struct{}

func (realScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

type timerState struct {
	value      uint8
	basePeriod time.Duration
	masked     bool
	raiseIRQ   bool
	running    bool
	reached    bool
	cancel     func()
}

// Timers models the two Adlib-compatible programmable down-counters:
// one-shot re-armable timers whose expiry can set a status flag, raise
// an IRQ, or both, and which reschedule themselves while running.
type Timers struct {
	t        [2]timerState
	sched    Scheduler
	onExpire func(index int)
}

// NewTimers returns both timers at their reload defaults. onExpire is
// invoked (on the scheduler's callback, synchronously with no other
// engine state held locked) whenever an expiring timer's raise-IRQ flag
// is set.
func NewTimers(sched Scheduler, onExpire func(index int)) *Timers {
	if sched == nil {
		sched = realScheduler{}
	}
	tm := &Timers{sched: sched, onExpire: onExpire}
	tm.t[0].basePeriod = 80 * time.Microsecond
	tm.t[1].basePeriod = 320 * time.Microsecond
	tm.resetValues()
	return tm
}

func (tm *Timers) resetValues() {
	for i := range tm.t {
		tm.t[i].value = 0xff
		tm.t[i].masked = false
		tm.t[i].raiseIRQ = false
		tm.t[i].reached = false
	}
}

func (tm *Timers) delay(i int) time.Duration {
	return time.Duration(256-int(tm.t[i].value)) * tm.t[i].basePeriod
}

// WriteValue latches a timer's 8-bit reload value.
func (tm *Timers) WriteValue(i int, val uint8) {
	tm.t[i].value = val
}

// WriteControl latches the timer-control register (mask bits for which
// timer raises an IRQ on expiry). It reports which timers' IRQStatus
// bits the caller should now clear, since disabling raise-IRQ for a
// timer also clears any bit it had already set.
func (tm *Timers) WriteControl(val uint8) (clearTimer0, clearTimer1 bool) {
	tm.t[0].raiseIRQ = val&0x04 != 0
	tm.t[1].raiseIRQ = val&0x08 != 0
	return !tm.t[0].raiseIRQ, !tm.t[1].raiseIRQ
}

// WriteCommand latches the Adlib-style timer command register: bit 7
// clears both reached flags; bits 6/5 mask timer 0/1's reached flag;
// bits 0/1 start or stop timer 0/1.
func (tm *Timers) WriteCommand(val uint8) {
	if val&0x80 != 0 {
		tm.t[0].reached = false
		tm.t[1].reached = false
		return
	}
	tm.t[0].masked = val&0x40 != 0
	tm.t[1].masked = val&0x20 != 0
	tm.setRunning(0, val&0x01 != 0)
	tm.setRunning(1, val&0x02 != 0)
}

func (tm *Timers) setRunning(i int, run bool) {
	if run {
		if !tm.t[i].running {
			tm.arm(i)
			tm.t[i].running = true
		}
		return
	}
	tm.t[i].running = false
	if tm.t[i].cancel != nil {
		tm.t[i].cancel()
		tm.t[i].cancel = nil
	}
}

func (tm *Timers) arm(i int) {
	tm.t[i].cancel = tm.sched.Schedule(tm.delay(i), func() { tm.expire(i) })
}

func (tm *Timers) expire(i int) {
	if !tm.t[i].masked {
		tm.t[i].reached = true
	}
	if tm.t[i].raiseIRQ && tm.onExpire != nil {
		tm.onExpire(i)
	}
	if tm.t[i].running {
		tm.arm(i)
	}
}

// StatusByte renders the Adlib-compatible timer status bits (reached
// flags only; the IRQStatus-derived bits are folded in by the caller).
func (tm *Timers) StatusByte() uint8 {
	var b uint8
	if tm.t[0].reached {
		b |= 1 << 6
	}
	if tm.t[1].reached {
		b |= 1 << 5
	}
	if b&0x60 != 0 {
		b |= 1 << 7
	}
	return b
}

// Reset stops both timers and returns them to their reload defaults.
func (tm *Timers) Reset() {
	tm.setRunning(0, false)
	tm.setRunning(1, false)
	tm.resetValues()
}
