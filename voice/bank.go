package voice

// BankSize is the number of oscillators the hardware implements; the
// host can run fewer of them active at once.
const BankSize = 32

// Bank owns all 32 voices plus the tables they share read-only. It holds
// no reference back to Engine or IrqAggregator: callers pass in whatever
// those collaborators need to receive.
type Bank struct {
	voices [BankSize]*Voice
	vol    *VolumeTable
	pan    *PanTable
}

// NewBank builds all 32 voices and the two shared tables.
func NewBank() *Bank {
	b := &Bank{
		vol: NewVolumeTable(),
		pan: NewPanTable(),
	}
	for i := range b.voices {
		b.voices[i] = NewVoice(i)
	}
	return b
}

// Voice returns the voice at a given index, or nil if out of range.
func (b *Bank) Voice(index int) *Voice {
	if index < 0 || index >= BankSize {
		return nil
	}
	return b.voices[index]
}

// Volume and Pan expose the shared tables, e.g. for a register read of
// an uncommitted ramp position during a DMA-driven volume sweep.
func (b *Bank) Volume() *VolumeTable { return b.vol }
func (b *Bank) Pan() *PanTable       { return b.pan }

// Generate mixes the first active voices into out (accumulating into
// whatever it already holds), in order, stopping after active voices
// rather than running the full bank: the hardware only clocks the
// channels the host has enabled.
//
// peak, waveIRQ and rampIRQ are threaded in directly from the caller's
// own running state (SoftLimiter's peak detector, IrqAggregator's
// latched masks) and are never reset here; they accumulate across
// calls until something else (a status read, a release step) clears
// them.
func (b *Bank) Generate(mem *SampleMemory, out []float32, active int, peak *PeakAmplitude, waveIRQ, rampIRQ *uint32) {
	if active > BankSize {
		active = BankSize
	}
	for i := 0; i < active; i++ {
		b.voices[i].Generate(mem, b.vol, b.pan, out, peak, waveIRQ, rampIRQ)
	}
}
