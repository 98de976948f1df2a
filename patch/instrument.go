// Package patch decodes GF1 instrument patch (.PAT) files and loads
// their wave samples into an Engine's sample memory.
package patch

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// fileHeader is the fixed leading portion of a .PAT file.
type fileHeader struct {
	Magic         [12]byte
	IDVersion     [10]byte
	Description   [60]byte
	Instruments   uint8
	Voices        uint8
	Channels      uint8
	Waveforms     uint16
	MasterVolume  uint16
	DataSize      uint32
	_             [36]byte
}

// instrumentHeader precedes one instrument's layers.
type instrumentHeader struct {
	ID     uint16
	Name   [16]byte
	Size   uint32
	Layers uint8
	_      [40]byte
}

type layerHeader struct {
	Duplicate uint8
	Layer     uint8
	Size      uint32
	Samples   uint8
	_         [40]byte
}

// waveHeader precedes one sample's raw payload. Mode bit 0 selects 16-bit
// samples, bit 1 selects unsigned PCM, bit 2 loop, bit 3 bidirectional
// loop, bit 4 loop-backward (decreasing).
type waveHeader struct {
	Name       [7]byte
	Fractions  uint8
	Size       uint32
	LoopStart  uint32
	LoopEnd    uint32
	SampleRate uint16
	LowFreq    uint32
	HighFreq   uint32
	RootFreq   uint32
	Tune       int16
	Balance    uint8
	EnvRate    [6]uint8
	EnvOffset  [6]uint8
	TremSweep  uint8
	TremRate   uint8
	TremDepth  uint8
	VibSweep   uint8
	VibRate    uint8
	VibDepth   uint8
	Mode       uint8
	ScaleFreq  uint16
	ScaleFac   uint16
	_          [36]byte
}

const (
	modeSixteenBit uint8 = 1 << 0
	modeUnsigned   uint8 = 1 << 1
	modeLoop       uint8 = 1 << 2
	modeBackward   uint8 = 1 << 3
	modeDecreasing uint8 = 1 << 4
)

var magicPrefix = [11]byte{'G', 'F', '1', 'P', 'A', 'T', 'C', 'H', '1', '1', '0'}

// Wave is one decoded sample: header metadata plus its raw payload,
// already converted to the card's native signed PCM.
type Wave struct {
	Name       string
	SixteenBit bool
	Loop       bool
	Bidirectional bool
	Decreasing bool
	LoopStart  uint32
	LoopEnd    uint32
	RootFreq   uint32
	Data       []byte
}

// Instrument is one playable voice definition: a name and its ordered
// waves, each of which Upload can lay into SampleMemory.
type Instrument struct {
	Name  string
	Waves []Wave
}

// Decode parses a complete .PAT file from r.
func Decode(r io.Reader) ([]Instrument, error) {
	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("patch: read file header: %w", err)
	}
	if string(hdr.Magic[:11]) != string(magicPrefix[:]) {
		return nil, errors.New("patch: not a GF1 patch file")
	}

	instruments := make([]Instrument, 0, hdr.Instruments)
	for i := uint8(0); i < hdr.Instruments; i++ {
		var ih instrumentHeader
		if err := binary.Read(r, binary.LittleEndian, &ih); err != nil {
			return nil, fmt.Errorf("patch: read instrument %d header: %w", i, err)
		}
		inst := Instrument{Name: trimCString(ih.Name[:])}
		for l := uint8(0); l < ih.Layers; l++ {
			var lh layerHeader
			if err := binary.Read(r, binary.LittleEndian, &lh); err != nil {
				return nil, fmt.Errorf("patch: read layer %d header: %w", l, err)
			}
			for s := uint8(0); s < lh.Samples; s++ {
				wave, err := decodeWave(r)
				if err != nil {
					return nil, fmt.Errorf("patch: instrument %q layer %d: %w", inst.Name, l, err)
				}
				inst.Waves = append(inst.Waves, wave)
			}
		}
		instruments = append(instruments, inst)
	}
	return instruments, nil
}

func decodeWave(r io.Reader) (Wave, error) {
	var wh waveHeader
	if err := binary.Read(r, binary.LittleEndian, &wh); err != nil {
		return Wave{}, fmt.Errorf("read wave header: %w", err)
	}
	data := make([]byte, wh.Size)
	if _, err := io.ReadFull(r, data); err != nil {
		return Wave{}, fmt.Errorf("read %d bytes of sample data: %w", wh.Size, err)
	}
	if wh.Mode&modeUnsigned != 0 {
		flipSign(data, wh.Mode&modeSixteenBit != 0)
	}
	return Wave{
		Name:          trimCString(wh.Name[:]),
		SixteenBit:    wh.Mode&modeSixteenBit != 0,
		Loop:          wh.Mode&modeLoop != 0,
		Bidirectional: wh.Mode&modeBackward != 0,
		Decreasing:    wh.Mode&modeDecreasing != 0,
		LoopStart:     wh.LoopStart,
		LoopEnd:       wh.LoopEnd,
		RootFreq:      wh.RootFreq,
		Data:          data,
	}, nil
}

// flipSign converts offset-binary (unsigned) PCM to the card's native
// signed representation by XOR-ing the top bit of every sample — the
// same conversion DmaEngine applies to unsigned DMA payloads.
func flipSign(data []byte, sixteenBit bool) {
	if sixteenBit {
		for i := 1; i < len(data); i += 2 {
			data[i] ^= 0x80
		}
		return
	}
	for i := range data {
		data[i] ^= 0x80
	}
}

func trimCString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
