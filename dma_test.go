package gf1

import (
	"testing"

	"github.com/arnebg/gf1/voice"
)

type fakeDMAChannel struct {
	data       []byte
	sixteenBit bool
	callback   func()
	written    []byte
}

func (c *fakeDMAChannel) CurrentCount() int {
	if c.sixteenBit {
		return len(c.data)/2 - 1
	}
	return len(c.data) - 1
}
func (c *fakeDMAChannel) Is16Bit() bool { return c.sixteenBit }

// Read copies its full payload into dst and reports how many count
// units that represents — half the byte count on a 16-bit channel,
// matching Transfer's own n *= 2 step that converts it back to bytes.
func (c *fakeDMAChannel) Read(count int, dst []byte) int {
	n := copy(dst, c.data)
	if c.sixteenBit {
		return n / 2
	}
	return n
}

func (c *fakeDMAChannel) Write(count int, src []byte) int {
	c.written = append(c.written, src...)
	return count
}

func (c *fakeDMAChannel) RegisterCallback(fn func()) { c.callback = fn }

func TestDmaEngineTransferWritesToSampleMemory(t *testing.T) {
	mem := voice.NewSampleMemory()
	d := NewDmaEngine(mem)
	ch := &fakeDMAChannel{data: []byte{1, 2, 3, 4}}

	tcIRQ := d.Transfer(ch, 0x0010, dmaCtrlTCIRQ)

	if !tcIRQ {
		t.Fatal("Transfer must report a terminal-count IRQ when dmaCtrlTCIRQ is set")
	}
	target := dmaTarget(0x0010, 0)
	for i, b := range ch.data {
		if got := mem.PeekByte(target + uint32(i)); got != b {
			t.Fatalf("mem[%d] = %d, want %d", target+uint32(i), got, b)
		}
	}
	if ch.callback != nil {
		t.Fatal("Transfer must deregister the channel's callback when done")
	}
}

func TestDmaEngineTransferInvertsSignOnUpload(t *testing.T) {
	mem := voice.NewSampleMemory()
	d := NewDmaEngine(mem)
	ch := &fakeDMAChannel{data: []byte{0x00, 0x80, 0xff}}

	d.Transfer(ch, 0, dmaCtrlInvert)

	want := []byte{0x80, 0x00, 0x7f}
	for i, b := range want {
		if got := mem.PeekByte(uint32(i)); got != b {
			t.Fatalf("mem[%d] = %#x, want %#x", i, got, b)
		}
	}
}

func TestDmaEngineTransferSixteenBitUploadDoublesBufferSize(t *testing.T) {
	mem := voice.NewSampleMemory()
	d := NewDmaEngine(mem)
	// 4 count units, 16-bit: CurrentCount()+1 = 4, but the real byte
	// payload is 8 bytes long.
	ch := &fakeDMAChannel{sixteenBit: true, data: []byte{1, 2, 3, 4, 5, 6, 7, 8}}

	d.Transfer(ch, 0, 0)

	for i, b := range ch.data {
		if got := mem.PeekByte(uint32(i)); got != b {
			t.Fatalf("mem[%d] = %d, want %d (16-bit transfer must not truncate the byte payload)", i, got, b)
		}
	}
}

func TestDmaEngineTransferDownloadDirection(t *testing.T) {
	mem := voice.NewSampleMemory()
	d := NewDmaEngine(mem)
	mem.PokeByte(0, 0xaa)
	mem.PokeByte(1, 0xbb)
	ch := &fakeDMAChannel{data: []byte{0, 0}}

	d.Transfer(ch, 0, dmaCtrlDirection)

	if len(ch.written) != 2 || ch.written[0] != 0xaa || ch.written[1] != 0xbb {
		t.Fatalf("written = %v, want [0xaa 0xbb]", ch.written)
	}
}

func TestDmaEngineTransferSixteenBitDownloadDoublesBufferSize(t *testing.T) {
	mem := voice.NewSampleMemory()
	d := NewDmaEngine(mem)
	for i := uint32(0); i < 8; i++ {
		mem.PokeByte(i, byte(i+1))
	}
	ch := &fakeDMAChannel{sixteenBit: true, data: make([]byte, 8)}

	d.Transfer(ch, 0, dmaCtrlDirection)

	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if len(ch.written) != len(want) {
		t.Fatalf("written = %v, want %v (16-bit download must carry the full doubled byte count)", ch.written, want)
	}
	for i, b := range want {
		if ch.written[i] != b {
			t.Fatalf("written[%d] = %d, want %d", i, ch.written[i], b)
		}
	}
}

func TestDmaTargetBankedAddressing(t *testing.T) {
	got := dmaTarget(0x4010, dmaCtrlBanked)
	want := (((uint32(0x4010) & 0x1fff) << 1) | (uint32(0x4010) & 0xc000)) << 4
	if got != want {
		t.Fatalf("dmaTarget = %#x, want %#x", got, want)
	}
}
