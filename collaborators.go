// Package gf1 implements the GF1 wavetable synthesizer engine: register
// dispatch, the global register file, IRQ aggregation, timers, DMA
// upload, and the mix callback that drives a voice.Bank into a stereo
// signed-16-bit stream.
package gf1

// Mixer is the downstream audio sink the engine emits mixed frames to.
// It owns sample-rate conversion and output format; the engine only
// ever hands it interleaved signed 16-bit stereo frames.
type Mixer interface {
	AddSamples(frames []int16)
	SetFrequency(hz int)
	Enable(enabled bool)
}

// PIC is the host's programmable interrupt controller.
type PIC interface {
	ActivateIRQ(irq int)
}

// DMAChannel is one host DMA channel as the engine needs it for a
// sample upload or a card-to-host readback.
type DMAChannel interface {
	CurrentCount() int
	Is16Bit() bool
	Read(count int, dst []byte) int
	Write(count int, src []byte) int
	RegisterCallback(fn func())
}
