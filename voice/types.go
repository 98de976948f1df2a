// Package voice implements the GF1 wavetable oscillator bank: the
// per-voice phase/ramp state machine, the shared volume and pan lookup
// tables, and the 1 MiB sample memory voices read from.
package voice

// Phase is a 20.9 fixed-point address into SampleMemory: the upper 20
// bits select a byte, the low 9 bits are sub-sample fraction.
type Phase uint32

const (
	phaseFracBits = 9
	phaseFracMask = (1 << phaseFracBits) - 1
	byteAddrMask  = (1 << 20) - 1 // SampleMemory wraps modulo 2^20
)

// WaveCtrl and RampCtrl share the same 8-bit flag layout.
type Ctrl uint8

const (
	CtrlStopped       Ctrl = 1 << 0
	CtrlStopRequest   Ctrl = 1 << 1
	Ctrl16Bit         Ctrl = 1 << 2
	CtrlLoop          Ctrl = 1 << 3
	CtrlBidirectional Ctrl = 1 << 4
	CtrlIRQEnabled    Ctrl = 1 << 5
	CtrlDecreasing    Ctrl = 1 << 6
	CtrlIRQPending    Ctrl = 1 << 7

	// ctrlManualIRQTrigger is checked against the raw value a register
	// write carries, before that value is masked down for storage: if
	// both IRQEnabled and IRQPending are set in the write, the host is
	// raising the voice IRQ by hand rather than waiting for a boundary
	// crossing. IRQPending itself is never stored — a status read
	// reconstructs it from the aggregator's live IRQ state instead.
	ctrlManualIRQTrigger = CtrlIRQEnabled | CtrlIRQPending

	// ctrlStoreMask drops IRQPending (bit 7) when a ctrl register write
	// is latched into state.
	ctrlStoreMask = 0x7f

	// ctrlRampRolloverOnly is ramp_ctrl bit 2: on this chip the bit
	// position is shared with Ctrl16Bit, but only ramp_ctrl ever tests it
	// this way.
	ctrlRampRolloverOnly = Ctrl16Bit
)

// PeakAmplitude tracks the loudest sample emitted into each output channel
// across a Generate call, read by SoftLimiter after every mix block.
type PeakAmplitude struct {
	Left, Right float32
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// ceilDivUint32 is ceiling integer division, used to derive a phase
// increment from a 16-bit frequency register and a ramp increment from
// an 8-bit rate register. Division by zero yields zero rather than
// panicking since a zero divider is a valid (if silent) register state.
func ceilDivUint32(num, den uint32) uint32 {
	if den == 0 {
		return 0
	}
	return (num + den - 1) / den
}

// DebugAssertions gates an internal-consistency check ("interpolated
// sample within the true integer range of its width") that release
// builds skip so a logic bug degrades audio instead of panicking a
// running synth. Tests turn it on.
var DebugAssertions = false

// assertRange panics (only when DebugAssertions is set) if v falls
// outside [low, high].
func assertRange(v, low, high int32) {
	if DebugAssertions && !(v >= low && v <= high) {
		panic("voice: interpolated sample out of range")
	}
}
