package gf1

const (
	irqStatusDMATC  uint8 = 1 << 7
	irqStatusRamp   uint8 = 1 << 6
	irqStatusWave   uint8 = 1 << 5
	irqStatusTimer1 uint8 = 1 << 3
	irqStatusTimer0 uint8 = 1 << 2
)

// IrqAggregator consolidates the per-voice wave and ramp IRQ bitmaps
// into the card's single interrupt line, reporting which voice is
// responsible via a round-robin cursor among the active voices. It does
// not itself talk to the PIC: Engine decides whether a status change
// is worth edging the host IRQ line, since that also depends on mix
// control state this type doesn't own.
type IrqAggregator struct {
	WaveIRQ   uint32
	RampIRQ   uint32
	IRQStatus uint8
	IRQChan   uint32
}

// NewIrqAggregator returns an aggregator with no pending IRQs.
func NewIrqAggregator() *IrqAggregator {
	return &IrqAggregator{}
}

// Reevaluate recomputes IRQStatus from the current wave/ramp bitmaps
// (masked to the active voices) and advances IRQChan to the next voice
// with a pending IRQ.
func (a *IrqAggregator) Reevaluate(activeVoices int, activeMask uint32) {
	a.IRQStatus &^= irqStatusRamp | irqStatusWave
	total := (a.RampIRQ | a.WaveIRQ) & activeMask
	if total == 0 {
		return
	}
	if a.RampIRQ != 0 {
		a.IRQStatus |= irqStatusRamp
	}
	if a.WaveIRQ != 0 {
		a.IRQStatus |= irqStatusWave
	}
	for {
		check := uint32(1) << a.IRQChan
		if total&check != 0 {
			return
		}
		a.IRQChan++
		if activeVoices == 0 || int(a.IRQChan) >= activeVoices {
			a.IRQChan = 0
		}
	}
}

// AckVoiceIRQ clears both pending IRQ bits for the voice currently
// published by IRQChan, letting the host drain pending voice
// interrupts by repeated reads of the voice IRQ status register.
func (a *IrqAggregator) AckVoiceIRQ() (voiceChan uint32) {
	voiceChan = a.IRQChan
	mask := uint32(1) << voiceChan
	a.WaveIRQ &^= mask
	a.RampIRQ &^= mask
	return voiceChan
}

// SetTimerIRQ sets or clears one timer's bit in IRQStatus (timer 0 is
// bit 2, timer 1 is bit 3).
func (a *IrqAggregator) SetTimerIRQ(index int, active bool) {
	bit := irqStatusTimer0
	if index == 1 {
		bit = irqStatusTimer1
	}
	if active {
		a.IRQStatus |= bit
	} else {
		a.IRQStatus &^= bit
	}
}

// SetDMATC sets or clears the DMA terminal-count bit.
func (a *IrqAggregator) SetDMATC(active bool) {
	if active {
		a.IRQStatus |= irqStatusDMATC
	} else {
		a.IRQStatus &^= irqStatusDMATC
	}
}

// Reset clears all IRQ bookkeeping, as a full synthesizer reset does.
func (a *IrqAggregator) Reset() {
	a.WaveIRQ = 0
	a.RampIRQ = 0
	a.IRQStatus = 0
	a.IRQChan = 0
}
