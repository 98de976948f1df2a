package gf1

// Register port offsets, relative to the card's configured base port.
const (
	PortMixControl      = 0x200
	PortIRQStatus       = 0x206
	PortTimerStatus     = 0x208
	PortTimerCommand    = 0x209
	PortAdlibCommand    = 0x20A
	PortIRQDMAControl   = 0x20B
	PortVoiceIndex      = 0x302
	PortGlobalRegSelect = 0x303
	PortGlobalRegData   = 0x304
	PortGlobalRegDataHi = 0x305
	PortDRAM            = 0x307
)

// Global register indices the engine gives special handling beyond a
// plain field write.
const (
	RegWaveCtrl     = 0x00
	RegWaveFreq     = 0x01
	RegWaveStartHi  = 0x02
	RegWaveStartLo  = 0x03
	RegWaveEndHi    = 0x04
	RegWaveEndLo    = 0x05
	RegRampRate     = 0x06
	RegRampStart    = 0x07
	RegRampEnd      = 0x08
	RegRampCur      = 0x09
	RegWaveAddrHi   = 0x0A
	RegWaveAddrLo   = 0x0B
	RegPanPot       = 0x0C
	RegRampCtrl     = 0x0D
	RegActiveVoices = 0x0E
	RegDMAControl   = 0x41
	RegDMAAddr      = 0x42
	RegDRAMAddrHi   = 0x43
	RegDRAMAddrLo   = 0x44
	RegTimerCtrl    = 0x45
	RegTimer1       = 0x46
	RegTimer2       = 0x47
	RegSampControl  = 0x49
	RegReset        = 0x4C
	RegVoiceIRQ     = 0x8F
)

// irqLUT and dmaLUT translate a 3-bit selector written to
// PortIRQDMAControl into the actual ISA IRQ/DMA line.
var irqLUT = [8]uint8{0, 2, 5, 3, 7, 11, 12, 15}
var dmaLUT = [8]uint8{0, 1, 3, 5, 6, 7, 0, 0}
