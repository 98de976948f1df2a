// Package mixer provides gf1.Mixer implementations: a headless in-memory
// sink for tests and offline rendering, and three live backends wrapping
// oto, SDL2, and arl/blip.
package mixer

import "sync"

// RingMixer buffers every frame Engine hands it in memory. It never
// blocks and never drops a frame, which makes it useful for tests and
// for cmd/gf1play's offline render mode, but unsuitable for anything
// that needs to keep pace with a real audio clock.
type RingMixer struct {
	mu      sync.Mutex
	frames  []int16
	freq    int
	enabled bool
}

// NewRingMixer returns an empty RingMixer.
func NewRingMixer() *RingMixer {
	return &RingMixer{}
}

func (m *RingMixer) AddSamples(frames []int16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = append(m.frames, frames...)
}

func (m *RingMixer) SetFrequency(hz int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.freq = hz
}

func (m *RingMixer) Enable(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// Frequency returns the last frequency SetFrequency was called with.
func (m *RingMixer) Frequency() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.freq
}

// Enabled reports whether the engine currently has output enabled.
func (m *RingMixer) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Drain returns everything buffered so far and empties the buffer.
func (m *RingMixer) Drain() []int16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.frames
	m.frames = nil
	return out
}
