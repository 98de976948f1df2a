//go:build !headless

package mixer

import (
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

// OtoMixer drives real-time stereo output through oto/v3, grounded on
// the atomic-guarded player pattern: the audio-driver thread pulls
// through Read while AddSamples is called from whatever goroutine is
// running Engine.Mix, so the pending-sample buffer needs its own lock
// even though the engine itself is single-threaded.
type OtoMixer struct {
	ctx    *oto.Context
	player *oto.Player

	mu  sync.Mutex
	buf []int16

	freq    atomic.Int64
	enabled atomic.Bool
}

// NewOtoMixer opens an oto context at sampleRate and starts a player
// pulling from this mixer's pending buffer.
func NewOtoMixer(sampleRate int) (*OtoMixer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   0,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	m := &OtoMixer{ctx: ctx}
	m.freq.Store(int64(sampleRate))
	m.player = ctx.NewPlayer(m)
	m.player.Play()
	return m, nil
}

// Read implements io.Reader for oto's pull callback: it drains as many
// buffered frames as fit in p and zero-fills the remainder on underrun
// rather than blocking, since a real audio thread cannot wait.
func (m *OtoMixer) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(p) / 2
	if n > len(m.buf) {
		n = len(m.buf)
	}
	for i := 0; i < n; i++ {
		v := uint16(m.buf[i])
		p[2*i] = byte(v)
		p[2*i+1] = byte(v >> 8)
	}
	copy(m.buf, m.buf[n:])
	m.buf = m.buf[:len(m.buf)-n]

	for i := n * 2; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

func (m *OtoMixer) AddSamples(frames []int16) {
	m.mu.Lock()
	m.buf = append(m.buf, frames...)
	m.mu.Unlock()
}

// SetFrequency records the engine's requested rate for diagnostics; oto
// contexts are opened at a fixed rate, so retuning happens upstream
// (BlipMixer is the backend that actually resamples on a rate change).
func (m *OtoMixer) SetFrequency(hz int) {
	m.freq.Store(int64(hz))
}

func (m *OtoMixer) Enable(enabled bool) {
	m.enabled.Store(enabled)
	if enabled {
		m.player.Play()
	} else {
		m.player.Pause()
	}
}

// Close releases the oto player and context.
func (m *OtoMixer) Close() error {
	m.player.Close()
	return m.ctx.Suspend()
}
