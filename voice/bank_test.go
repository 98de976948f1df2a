package voice

import "testing"

func TestBankVoiceBoundsChecked(t *testing.T) {
	b := NewBank()
	if b.Voice(-1) != nil {
		t.Fatal("Voice(-1) must return nil")
	}
	if b.Voice(BankSize) != nil {
		t.Fatal("Voice(BankSize) must return nil")
	}
	if b.Voice(0) == nil {
		t.Fatal("Voice(0) must return a voice")
	}
}

func TestBankGenerateOnlyRunsActiveVoices(t *testing.T) {
	b := NewBank()
	mem := NewSampleMemory()
	for i := range [4]struct{}{} {
		v := b.Voice(i)
		v.waveCtrl = 0
		v.rampCtrl = 0
		v.endVol = 1000
		v.curVol = 1000
		v.waveEnd = Phase(100 << phaseFracBits)
		v.waveAdd = Phase(1 << phaseFracBits)
	}

	out := make([]float32, 2)
	var peak PeakAmplitude
	var waveIRQ, rampIRQ uint32
	b.Generate(mem, out, 2, &peak, &waveIRQ, &rampIRQ)

	if b.Voice(0).waveAddr == 0 {
		t.Fatal("voice 0 is within the active count and must have advanced")
	}
	if b.Voice(2).waveAddr != 0 {
		t.Fatal("voice 2 is outside the active count and must not have advanced")
	}
}
