package voice

// SampleMemorySize is the GF1 card's onboard sample RAM: exactly 1 MiB.
const SampleMemorySize = 1 << 20

// SampleMemory is the 1 MiB byte-addressable store voices read sample
// data from and DmaEngine/host pokes write to. It is a flat owned byte
// buffer with no cyclic references: the engine drives DMA and register
// pokes explicitly rather than snooping a CPU bus.
type SampleMemory struct {
	b [SampleMemorySize]byte
}

// NewSampleMemory returns a zero-initialized 1 MiB sample store.
func NewSampleMemory() *SampleMemory {
	return &SampleMemory{}
}

// PeekByte reads one byte at a 20-bit-wrapped address (register 0x307
// read).
func (m *SampleMemory) PeekByte(addr uint32) byte {
	return m.b[addr&byteAddrMask]
}

// PokeByte writes one byte at a 20-bit-wrapped address (register 0x307
// write). Out-of-range addresses can't occur since addr is
// always masked here rather than validated; a caller passing an
// already-invalid 32-bit address is a logic bug, not a user error.
func (m *SampleMemory) PokeByte(addr uint32, b byte) {
	m.b[addr&byteAddrMask] = b
}

// Bytes exposes the raw buffer without copying it. DmaEngine does not
// use it; its transfers go through PeekByte/PokeByte one byte at a time.
func (m *SampleMemory) Bytes() []byte {
	return m.b[:]
}

// int8At reinterprets a stored byte as signed 8-bit PCM.
func (m *SampleMemory) int8At(addr uint32) int32 {
	return int32(int8(m.b[addr&byteAddrMask]))
}
