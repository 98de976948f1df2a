package gf1

import (
	"log"

	"github.com/arnebg/gf1/voice"
)

// Engine is the top-level synthesizer: it owns sample memory, the voice
// bank, the global register file, IRQ aggregation, the two timers, DMA
// upload, and the soft limiter, and exposes a single register
// read/write API plus a mix callback to the host.
type Engine struct {
	mem  *voice.SampleMemory
	bank *voice.Bank
	regs *GlobalRegs
	irq  *IrqAggregator
	timers *Timers
	dma  *DmaEngine
	limiter *SoftLimiter

	mixer Mixer
	pic   PIC

	curVoice     *voice.Voice
	adlibCommand uint8
	peak         voice.PeakAmplitude

	dmaChan DMAChannel
}

// NewEngine constructs a synthesizer at power-on defaults, wired to the
// given downstream mixer and interrupt controller. sched is nil for a
// real wall-clock timer scheduler.
func NewEngine(mixer Mixer, pic PIC, sched Scheduler) *Engine {
	mem := voice.NewSampleMemory()
	e := &Engine{
		mem:     mem,
		bank:    voice.NewBank(),
		regs:    NewGlobalRegs(),
		irq:     NewIrqAggregator(),
		dma:     NewDmaEngine(mem),
		limiter: NewSoftLimiter(),
		mixer:   mixer,
		pic:     pic,
		peak:    voice.PeakAmplitude{Left: 1.0, Right: 1.0},
	}
	e.timers = NewTimers(sched, e.onTimerExpire)
	e.curVoice = e.bank.Voice(0)
	mixer.SetFrequency(int(e.regs.BaseFreq))
	return e
}

// AttachDMAChannel gives the engine the host DMA channel it will
// transfer sample uploads over.
func (e *Engine) AttachDMAChannel(ch DMAChannel) {
	e.dmaChan = ch
}

// Close performs a full reset and detaches from the host collaborators.
func (e *Engine) Close() {
	e.reset(0x01)
	if e.dmaChan != nil {
		e.dmaChan.RegisterCallback(nil)
	}
	e.mixer.Enable(false)
}

// Mix generates up to 64 stereo frames and emits them to the downstream
// mixer, then re-evaluates pending voice IRQs.
func (e *Engine) Mix(frames int) {
	if frames > 64 {
		frames = 64
	}
	acc := make([]float32, frames*2)
	e.bank.Generate(e.mem, acc, e.regs.ActiveVoices, &e.peak, &e.irq.WaveIRQ, &e.irq.RampIRQ)

	out := make([]int16, frames*2)
	e.limiter.Process(acc, out, &e.peak)
	e.mixer.AddSamples(out)

	e.checkVoiceIRQ()
}

// WriteRegister dispatches an 8-bit host write to port.
func (e *Engine) WriteRegister(port int, val uint8) {
	switch port {
	case PortMixControl:
		e.regs.MixControl = val
		e.regs.ChangeIRQDMA = true
	case PortTimerStatus:
		e.adlibCommand = val
	case PortTimerCommand:
		e.timers.WriteCommand(val)
	case PortIRQDMAControl:
		e.applyIRQDMAAssignment(val)
	case PortVoiceIndex:
		e.regs.CurChannel = val & 0x1f
		e.curVoice = e.bank.Voice(int(e.regs.CurChannel))
	case PortGlobalRegSelect:
		e.regs.RegSelect = val
		e.regs.RegData = 0
	case PortGlobalRegData:
		e.regs.RegData = uint16(val)
	case PortGlobalRegDataHi:
		e.regs.RegData = (e.regs.RegData & 0x00ff) | uint16(val)<<8
		e.executeGlobalRegister()
	case PortDRAM:
		if e.regs.DramAddr < voice.SampleMemorySize {
			e.mem.PokeByte(e.regs.DramAddr, val)
		}
	}
}

// WriteRegisterWide dispatches a 16-bit host write to port (only
// PortGlobalRegData accepts one; a wide write there executes
// immediately, unlike the 8-bit low-byte-only write).
func (e *Engine) WriteRegisterWide(port int, val uint16) {
	if port != PortGlobalRegData {
		e.WriteRegister(port, uint8(val))
		return
	}
	e.regs.RegData = val
	e.executeGlobalRegister()
}

// ReadRegister dispatches an 8-bit host read from port.
func (e *Engine) ReadRegister(port int) uint8 {
	switch port {
	case PortIRQStatus:
		return e.irq.IRQStatus
	case PortTimerStatus:
		b := e.timers.StatusByte()
		if e.irq.IRQStatus&irqStatusTimer0 != 0 {
			b |= 1 << 2
		}
		if e.irq.IRQStatus&irqStatusTimer1 != 0 {
			b |= 1 << 1
		}
		return b
	case PortAdlibCommand:
		return e.adlibCommand
	case PortVoiceIndex:
		return e.regs.CurChannel
	case PortGlobalRegSelect:
		return e.regs.RegSelect
	case PortGlobalRegData:
		return uint8(e.readGlobalRegister())
	case PortGlobalRegDataHi:
		return uint8(e.readGlobalRegister() >> 8)
	case PortDRAM:
		if e.regs.DramAddr < voice.SampleMemorySize {
			return e.mem.PeekByte(e.regs.DramAddr)
		}
		return 0
	default:
		return 0xff
	}
}

func (e *Engine) applyIRQDMAAssignment(val uint8) {
	if !e.regs.ChangeIRQDMA {
		return
	}
	e.regs.ChangeIRQDMA = false
	sel := val & 0x7
	if e.regs.MixControl&0x40 != 0 {
		if irqLUT[sel] != 0 {
			e.regs.IRQ1 = irqLUT[sel]
		}
	} else {
		if dmaLUT[sel] != 0 {
			e.regs.DMA1 = dmaLUT[sel]
		}
	}
}

// executeGlobalRegister applies the global register selected by
// RegSelect using the 16-bit value latched in RegData.
func (e *Engine) executeGlobalRegister() {
	data := e.regs.RegData
	switch e.regs.RegSelect {
	case RegWaveCtrl:
		if e.curVoice != nil {
			manual := e.curVoice.WriteWaveCtrl(uint8(data >> 8))
			e.setVoiceManualIRQ(e.curVoice, true, manual)
		}
	case RegWaveFreq:
		if e.curVoice != nil {
			e.curVoice.WriteWaveFreq(data)
		}
	case RegWaveStartHi:
		if e.curVoice != nil {
			hi := uint32(data&0x1fff) << 16
			e.curVoice.SetWaveStart(voice.Phase((uint32(e.curVoice.WaveStart()) & 0xffff) | hi))
		}
	case RegWaveStartLo:
		if e.curVoice != nil {
			lo := uint32(data)
			e.curVoice.SetWaveStart(voice.Phase((uint32(e.curVoice.WaveStart()) & 0xffff0000) | lo))
		}
	case RegWaveEndHi:
		if e.curVoice != nil {
			hi := uint32(data&0x1fff) << 16
			e.curVoice.SetWaveEnd(voice.Phase((uint32(e.curVoice.WaveEnd()) & 0xffff) | hi))
		}
	case RegWaveEndLo:
		if e.curVoice != nil {
			lo := uint32(data)
			e.curVoice.SetWaveEnd(voice.Phase((uint32(e.curVoice.WaveEnd()) & 0xffff0000) | lo))
		}
	case RegRampRate:
		if e.curVoice != nil {
			e.curVoice.WriteRampRate(uint8(data >> 8))
		}
	case RegRampStart:
		if e.curVoice != nil {
			e.curVoice.SetStartVol(uint16(uint8(data>>8)) << 4)
		}
	case RegRampEnd:
		if e.curVoice != nil {
			e.curVoice.SetEndVol(uint16(uint8(data>>8)) << 4)
		}
	case RegRampCur:
		if e.curVoice != nil {
			e.curVoice.SetCurVol(data >> 4)
		}
	case RegWaveAddrHi:
		if e.curVoice != nil {
			hi := uint32(data&0x1fff) << 16
			e.curVoice.SetWaveAddr(voice.Phase((uint32(e.curVoice.WaveAddr()) & 0xffff) | hi))
		}
	case RegWaveAddrLo:
		if e.curVoice != nil {
			lo := uint32(data)
			e.curVoice.SetWaveAddr(voice.Phase((uint32(e.curVoice.WaveAddr()) & 0xffff0000) | lo))
		}
	case RegPanPot:
		if e.curVoice != nil {
			e.curVoice.WritePanPot(uint8(data >> 8))
		}
	case RegRampCtrl:
		if e.curVoice != nil {
			manual := e.curVoice.WriteRampCtrl(uint8(data >> 8))
			e.setVoiceManualIRQ(e.curVoice, false, manual)
		}
	case RegActiveVoices:
		e.applyActiveVoices(data)
	case RegDMAControl:
		e.regs.DMAControl = uint8(data >> 8)
		e.armOrDisarmDMA(e.regs.DMAControl)
	case RegDMAAddr:
		e.regs.DmaAddr = data
	case RegDRAMAddrHi:
		e.regs.DramAddr = (e.regs.DramAddr & 0xff0000) | uint32(data)
	case RegDRAMAddrLo:
		e.regs.DramAddr = (e.regs.DramAddr & 0xffff) | uint32(data>>8)<<16
	case RegTimerCtrl:
		clear0, clear1 := e.timers.WriteControl(uint8(data >> 8))
		if clear0 {
			e.irq.SetTimerIRQ(0, false)
		}
		if clear1 {
			e.irq.SetTimerIRQ(1, false)
		}
	case RegTimer1:
		e.timers.WriteValue(0, uint8(data>>8))
	case RegTimer2:
		e.timers.WriteValue(1, uint8(data>>8))
	case RegSampControl:
		e.regs.SampControl = uint8(data >> 8)
		e.armOrDisarmDMA(e.regs.SampControl)
	case RegReset:
		e.reset(uint8(data >> 8))
	default:
		log.Printf("gf1: unimplemented global register %#x (data %#x)", e.regs.RegSelect, data)
	}
}

func (e *Engine) applyActiveVoices(data uint16) {
	// Mirrors a real card quirk some drivers rely on: the register
	// select latch itself takes the written byte.
	e.regs.RegSelect = uint8(data >> 8)
	requested := 1 + int((data>>8)&63)
	if e.regs.SetActiveVoices(requested) {
		e.mixer.SetFrequency(int(e.regs.BaseFreq))
	}
	for i := 0; i < e.regs.ActiveVoices; i++ {
		v := e.bank.Voice(i)
		v.WriteWaveFreq(v.WaveFreq())
		v.WriteRampRate(v.RampRate())
	}
	e.mixer.Enable(true)
}

func (e *Engine) armOrDisarmDMA(control uint8) {
	if e.dmaChan == nil {
		return
	}
	if control&dmaCtrlEnable != 0 {
		e.dmaChan.RegisterCallback(e.runDMA)
	} else {
		e.dmaChan.RegisterCallback(nil)
	}
}

func (e *Engine) runDMA() {
	if e.dmaChan == nil {
		return
	}
	if e.dma.Transfer(e.dmaChan, e.regs.DmaAddr, e.regs.DMAControl) {
		e.irq.SetDMATC(true)
		e.checkIRQ()
	}
}

func (e *Engine) readGlobalRegister() uint16 {
	switch e.regs.RegSelect {
	case RegWaveCtrl:
		if e.curVoice == nil {
			return 0
		}
		active := e.irq.WaveIRQ&e.curVoice.IrqMask() != 0
		return uint16(e.curVoice.ReadWaveCtrl(active)) << 8
	case RegRampCtrl:
		if e.curVoice == nil {
			return 0
		}
		active := e.irq.RampIRQ&e.curVoice.IrqMask() != 0
		return uint16(e.curVoice.ReadRampCtrl(active)) << 8
	case RegWaveFreq:
		if e.curVoice == nil {
			return 0
		}
		return e.curVoice.WaveFreq()
	case RegPanPot:
		if e.curVoice == nil {
			return 0
		}
		return uint16(e.curVoice.PanPot()) << 8
	case RegVoiceIRQ:
		v := e.irq.AckVoiceIRQ()
		e.checkVoiceIRQ()
		return uint16(v)
	default:
		return 0
	}
}

func (e *Engine) setVoiceManualIRQ(v *voice.Voice, isWave bool, manual bool) {
	bitmap := &e.irq.RampIRQ
	if isWave {
		bitmap = &e.irq.WaveIRQ
	}
	mask := v.IrqMask()
	old := *bitmap
	if manual {
		*bitmap |= mask
	} else {
		*bitmap &^= mask
	}
	if old != *bitmap {
		e.checkVoiceIRQ()
	}
}

// onTimerExpire latches an expiring timer's IRQStatus bit and lets
// checkIRQ decide whether to edge the host IRQ line.
func (e *Engine) onTimerExpire(index int) {
	e.irq.SetTimerIRQ(index, true)
	e.checkIRQ()
}

func (e *Engine) checkVoiceIRQ() {
	e.irq.Reevaluate(e.regs.ActiveVoices, e.regs.ActiveMask)
	e.checkIRQ()
}

func (e *Engine) checkIRQ() {
	if e.irq.IRQStatus != 0 && e.regs.MixControl&0x08 != 0 {
		e.pic.ActivateIRQ(int(e.regs.IRQ1))
	}
}

func (e *Engine) reset(data uint8) {
	if data&0x01 != 0 {
		for i := 0; i < voice.BankSize; i++ {
			v := e.bank.Voice(i)
			v.SetCurVol(0)
			v.WriteWaveCtrl(0x01)
			v.WriteRampCtrl(0x01)
			v.WritePanPot(7)
		}
		e.irq.Reset()
		e.timers.Reset()
		e.peak = voice.PeakAmplitude{Left: 1.0, Right: 1.0}
		e.regs.ChangeIRQDMA = false
		e.regs.MixControl = 0x0b
	}
	e.regs.IRQEnabled = data&0x04 != 0
}

// Voice exposes a bank voice directly, for a host that wants to upload
// a patch's waves straight into it.
func (e *Engine) Voice(index int) *voice.Voice {
	return e.bank.Voice(index)
}

// SampleMemory exposes the card's sample store, for an instrument loader
// writing wave data ahead of pointing a voice at it.
func (e *Engine) SampleMemory() *voice.SampleMemory {
	return e.mem
}
