package voice

import "math"

// panTableSize is the number of 4-bit pan-pot positions.
const panTableSize = 16

// panGain is one constant-power stereo pan position.
type panGain struct {
	left, right float32
}

// PanTable is the precomputed constant-power stereo pan law shared
// read-only across every Voice in a Bank.
type PanTable struct {
	gain [panTableSize]panGain
}

// NewPanTable builds the 16-position pan law once at startup.
func NewPanTable() *PanTable {
	t := &PanTable{}
	for p := 0; p < panTableSize; p++ {
		var norm float64
		if p < 7 {
			norm = float64(p-7) / 7.0
		} else {
			norm = float64(p-7) / 8.0
		}
		angle := (norm + 1.0) * math.Pi / 4.0
		t.gain[p] = panGain{
			left:  float32(math.Cos(angle)),
			right: float32(math.Sin(angle)),
		}
	}
	return t
}

// At returns the (left, right) gain pair for a 4-bit pan position,
// clamping like the hardware register write does.
func (t *PanTable) At(pos uint8) (left, right float32) {
	if pos >= panTableSize {
		pos = panTableSize - 1
	}
	g := t.gain[pos]
	return g.left, g.right
}
