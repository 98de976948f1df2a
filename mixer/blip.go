package mixer

import (
	"sync"

	"github.com/arl/blip"
)

// BlipMixer band-limits voice transitions through two arl/blip delta
// buffers (one per stereo channel) before resampling down to the host's
// fixed output rate, grounded on the left/right delta-buffer pattern in
// arl/blip's own stereo demo. Unlike the other backends it reaches back
// into the engine's rate: SetFrequency is called every time the active
// voice count changes the synthesizer's own clock, and each call retunes
// both buffers' resamplers rather than just recording the new rate.
type BlipMixer struct {
	outputRate int

	mu         sync.Mutex
	bl         [2]*blip.Buffer
	clockRate  int
	clock      uint64
	lastL      int32
	lastR      int32
	out        []int16
}

// NewBlipMixer returns a mixer that resamples down to outputRate; it has
// no clock rate yet until the first SetFrequency call arms the buffers.
func NewBlipMixer(outputRate int) *BlipMixer {
	return &BlipMixer{outputRate: outputRate}
}

// SetFrequency retunes (or, on the first call, creates) both delta
// buffers for a new input clock rate.
func (m *BlipMixer) SetFrequency(hz int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clockRate = hz
	for i := range m.bl {
		if m.bl[i] == nil {
			m.bl[i] = blip.NewBuffer(m.outputRate / 10)
		}
		m.bl[i].SetRates(float64(hz), float64(m.outputRate))
	}
}

// AddSamples feeds interleaved stereo input samples in as delta events,
// one input clock per frame, then drains however many output samples
// that makes available into the pending output buffer.
func (m *BlipMixer) AddSamples(frames []int16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bl[0] == nil {
		return
	}

	start := m.clock
	n := len(frames) / 2
	for i := 0; i < n; i++ {
		l := int32(frames[2*i])
		r := int32(frames[2*i+1])
		if dl := l - m.lastL; dl != 0 {
			m.bl[0].AddDelta(m.clock, dl)
		}
		if dr := r - m.lastR; dr != 0 {
			m.bl[1].AddDelta(m.clock, dr)
		}
		m.lastL, m.lastR = l, r
		m.clock++
	}

	advanced := int(m.clock - start)
	if advanced == 0 {
		return
	}
	m.bl[0].EndFrame(advanced)
	m.bl[1].EndFrame(advanced)

	pairs := m.bl[0].SamplesAvailable()
	if pairs == 0 {
		return
	}
	out := make([]int16, pairs*2)
	m.bl[0].ReadSamples(out[0:], pairs, blip.Stereo)
	m.bl[1].ReadSamples(out[1:], pairs, blip.Stereo)
	m.out = append(m.out, out...)
}

func (m *BlipMixer) Enable(enabled bool) {}

// Drain returns everything resampled so far and empties the buffer.
func (m *BlipMixer) Drain() []int16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.out
	m.out = nil
	return out
}
