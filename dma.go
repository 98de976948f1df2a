package gf1

import "github.com/arnebg/gf1/voice"

const (
	dmaCtrlEnable    uint8 = 1 << 0
	dmaCtrlDirection uint8 = 1 << 1
	dmaCtrlBanked    uint8 = 1 << 2
	dmaCtrlTCIRQ     uint8 = 1 << 5
	dmaCtrlWide      uint8 = 1 << 6
	dmaCtrlInvert    uint8 = 1 << 7
)

// DmaEngine moves bytes between a host DMA channel and SampleMemory,
// applying the card's banked addressing and optional sign-flip
// conversion.
type DmaEngine struct {
	mem *voice.SampleMemory
}

// NewDmaEngine returns a DmaEngine writing into mem.
func NewDmaEngine(mem *voice.SampleMemory) *DmaEngine {
	return &DmaEngine{mem: mem}
}

// dmaTarget computes the SampleMemory byte address a DMA burst starts
// at, applying the card's banked addressing when control selects it.
func dmaTarget(dmaAddr uint16, control uint8) uint32 {
	if control&dmaCtrlBanked != 0 {
		return (((uint32(dmaAddr) & 0x1fff) << 1) | (uint32(dmaAddr) & 0xc000)) << 4
	}
	return uint32(dmaAddr) << 4
}

// Transfer runs one complete DMA burst on ch using the given DMA
// address/control register values, and deregisters ch's callback
// afterward. It reports whether the transfer should raise the
// terminal-count IRQ.
func (d *DmaEngine) Transfer(ch DMAChannel, dmaAddr uint16, control uint8) (tcIRQ bool) {
	target := dmaTarget(dmaAddr, control)
	count := ch.CurrentCount() + 1

	if control&dmaCtrlDirection == 0 {
		bufSize := count
		if ch.Is16Bit() {
			bufSize *= 2
		}
		buf := make([]byte, bufSize)
		n := ch.Read(count, buf)
		if ch.Is16Bit() {
			n *= 2
		}
		for i := 0; i < n; i++ {
			d.mem.PokeByte(target+uint32(i), buf[i])
		}
		if control&dmaCtrlInvert != 0 {
			d.flipSign(target, target+uint32(n), control&dmaCtrlWide != 0)
		}
	} else {
		bufSize := count
		if ch.Is16Bit() {
			bufSize *= 2
		}
		buf := make([]byte, bufSize)
		for i := 0; i < bufSize; i++ {
			buf[i] = d.mem.PeekByte(target + uint32(i))
		}
		ch.Write(count, buf)
	}

	ch.RegisterCallback(nil)
	return control&dmaCtrlTCIRQ != 0
}

// flipSign converts offset-binary (unsigned) DMA payload bytes into the
// card's native signed sample format by XOR-ing the sign bit of every
// payload byte (8-bit) or every high byte of a 16-bit sample.
func (d *DmaEngine) flipSign(start, end uint32, sixteenBit bool) {
	if sixteenBit {
		for i := start + 1; i < end; i += 2 {
			d.mem.PokeByte(i, d.mem.PeekByte(i)^0x80)
		}
		return
	}
	for i := start; i < end; i++ {
		d.mem.PokeByte(i, d.mem.PeekByte(i)^0x80)
	}
}
