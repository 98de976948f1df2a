//go:build cgo

// sdl.go drives an SDL2 audio device with a push-style callback, the
// same cgo-exported-function shape the card player's own main loop uses.
package mixer

// typedef unsigned char Uint8;
// void onSDLAudioCallback(void *userdata, Uint8 *stream, int len);
import "C"

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

var (
	sdlMu          sync.Mutex
	activeSDLMixer *SDLMixer
)

//export onSDLAudioCallback
func onSDLAudioCallback(userdata unsafe.Pointer, stream *C.Uint8, length C.int) {
	sdlMu.Lock()
	m := activeSDLMixer
	sdlMu.Unlock()
	if m == nil {
		return
	}

	n := int(length)
	hdr := reflect.SliceHeader{Data: uintptr(unsafe.Pointer(stream)), Len: n, Cap: n}
	buf := *(*[]byte)(unsafe.Pointer(&hdr))
	m.fill(buf)
}

// SDLMixer pushes mixed frames to an SDL2 audio device.
type SDLMixer struct {
	dev sdl.AudioDeviceID

	mu  sync.Mutex
	buf []int16
}

// NewSDLMixer opens the default SDL2 audio device at sampleRate and
// registers it as the one callback target; opening a second SDLMixer
// replaces the first as the callback's live target.
func NewSDLMixer(sampleRate int) (*SDLMixer, error) {
	if err := sdl.Init(sdl.INIT_AUDIO); err != nil {
		return nil, err
	}

	m := &SDLMixer{}
	spec := &sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   sdl.AUDIO_S16SYS,
		Channels: 2,
		Samples:  4096,
		Callback: sdl.AudioCallback(C.onSDLAudioCallback),
	}
	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return nil, err
	}
	m.dev = dev

	sdlMu.Lock()
	activeSDLMixer = m
	sdlMu.Unlock()
	return m, nil
}

func (m *SDLMixer) fill(out []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(out) / 2
	if n > len(m.buf) {
		n = len(m.buf)
	}
	for i := 0; i < n; i++ {
		v := uint16(m.buf[i])
		out[2*i] = byte(v)
		out[2*i+1] = byte(v >> 8)
	}
	copy(m.buf, m.buf[n:])
	m.buf = m.buf[:len(m.buf)-n]

	for i := n * 2; i < len(out); i++ {
		out[i] = 0
	}
}

func (m *SDLMixer) AddSamples(frames []int16) {
	m.mu.Lock()
	m.buf = append(m.buf, frames...)
	m.mu.Unlock()
}

// SetFrequency is a no-op: SDL2's device rate is fixed at open time.
func (m *SDLMixer) SetFrequency(hz int) {}

func (m *SDLMixer) Enable(enabled bool) {
	sdl.PauseAudioDevice(m.dev, !enabled)
}

// Close releases the SDL2 audio device.
func (m *SDLMixer) Close() {
	sdl.CloseAudioDevice(m.dev)
	sdlMu.Lock()
	if activeSDLMixer == m {
		activeSDLMixer = nil
	}
	sdlMu.Unlock()
}
