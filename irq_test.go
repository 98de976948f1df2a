package gf1

import "testing"

func TestIrqAggregatorReevaluateRoundRobin(t *testing.T) {
	a := NewIrqAggregator()
	a.WaveIRQ = 1<<0 | 1<<2
	a.Reevaluate(4, activeMask(4))

	if a.IRQStatus&irqStatusWave == 0 {
		t.Fatal("wave IRQ status bit must be set when WaveIRQ is non-zero")
	}
	if a.IRQChan != 0 {
		t.Fatalf("IRQChan = %d, want 0 (first pending voice)", a.IRQChan)
	}

	ack := a.AckVoiceIRQ()
	if ack != 0 {
		t.Fatalf("AckVoiceIRQ() = %d, want 0", ack)
	}
	if a.WaveIRQ&1 != 0 {
		t.Fatal("AckVoiceIRQ must clear the acknowledged voice's wave bit")
	}

	a.Reevaluate(4, activeMask(4))
	if a.IRQChan != 2 {
		t.Fatalf("IRQChan = %d, want 2 (next pending voice)", a.IRQChan)
	}
}

func TestIrqAggregatorReevaluateMasksInactiveVoices(t *testing.T) {
	a := NewIrqAggregator()
	a.WaveIRQ = 1 << 20 // voice 20, outside a 4-voice active mask
	a.Reevaluate(4, activeMask(4))

	if a.IRQStatus&irqStatusWave != 0 {
		t.Fatal("an IRQ from a voice outside the active mask must not surface")
	}
}

func TestIrqAggregatorTimerAndDMABits(t *testing.T) {
	a := NewIrqAggregator()
	a.SetTimerIRQ(0, true)
	a.SetTimerIRQ(1, true)
	if a.IRQStatus&irqStatusTimer0 == 0 || a.IRQStatus&irqStatusTimer1 == 0 {
		t.Fatal("both timer bits must be set")
	}
	a.SetTimerIRQ(0, false)
	if a.IRQStatus&irqStatusTimer0 != 0 {
		t.Fatal("timer 0 bit must clear")
	}

	a.SetDMATC(true)
	if a.IRQStatus&irqStatusDMATC == 0 {
		t.Fatal("DMA terminal-count bit must be set")
	}
}

func TestIrqAggregatorReset(t *testing.T) {
	a := NewIrqAggregator()
	a.WaveIRQ, a.RampIRQ, a.IRQStatus, a.IRQChan = 1, 1, 0xff, 7
	a.Reset()
	if a.WaveIRQ != 0 || a.RampIRQ != 0 || a.IRQStatus != 0 || a.IRQChan != 0 {
		t.Fatal("Reset must clear all IRQ bookkeeping")
	}
}
