package patch

import (
	"fmt"

	"github.com/arnebg/gf1/voice"
)

// Upload writes w's payload into mem starting at byteAddr and points
// v at it, returning the next free byte address. SampleMemory addresses
// are plain 20-bit byte offsets; Voice registers store the same address
// shifted left by the fixed-point fraction width so it can be advanced
// sub-sample at a time.
func Upload(mem *voice.SampleMemory, v *voice.Voice, byteAddr uint32, w Wave) uint32 {
	for i, b := range w.Data {
		mem.PokeByte(byteAddr+uint32(i), b)
	}
	end := byteAddr + uint32(len(w.Data))

	const fracBits = 9
	v.SetWaveStart(voice.Phase(byteAddr << fracBits))
	v.SetWaveEnd(voice.Phase(end << fracBits))
	v.SetWaveAddr(voice.Phase(byteAddr << fracBits))
	v.WriteWaveFreq(rootToFreq(w.RootFreq))

	var ctrl uint8
	if w.SixteenBit {
		ctrl |= uint8(voice.Ctrl16Bit)
	}
	if w.Loop {
		ctrl |= uint8(voice.CtrlLoop)
	}
	if w.Bidirectional {
		ctrl |= uint8(voice.CtrlBidirectional)
	}
	if w.Decreasing {
		ctrl |= uint8(voice.CtrlDecreasing)
	}
	v.WriteWaveCtrl(ctrl)
	return end
}

// rootToFreq uses a wave's recorded root frequency directly as the
// 16-bit frequency register value, clamped to 0xffff. It applies no
// conversion for the wave's sample rate or the card's mix rate, so the
// resulting playback pitch is not matched to the original recording.
func rootToFreq(rootFreq uint32) uint16 {
	if rootFreq > 0xffff {
		return 0xffff
	}
	return uint16(rootFreq)
}

// String renders an instrument for diagnostics.
func (i Instrument) String() string {
	return fmt.Sprintf("%s (%d waves)", i.Name, len(i.Waves))
}
