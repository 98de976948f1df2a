package gf1

import "github.com/arnebg/gf1/voice"

// limiterThreshold is one below the largest magnitude a signed 16-bit
// sample can hold, matching the "- 1" headroom a truncating convert
// from float needs to never clip.
const limiterThreshold = float32(32767 - 1)

// SoftLimiter tracks the loudest sample emitted into each output
// channel across mix blocks and, once it crosses the int16 ceiling,
// scales output down just enough to fit and releases the limit
// gradually rather than clipping.
type SoftLimiter struct{}

// NewSoftLimiter returns a limiter; it carries no state of its own —
// the running peak it reacts to is owned by the caller across blocks.
func NewSoftLimiter() *SoftLimiter {
	return &SoftLimiter{}
}

// Process truncates acc (interleaved stereo float samples) into out,
// reporting whether it had to scale down to avoid clipping. When it
// does, peak is decremented by one volume-table step per channel that
// was over threshold, so repeated quiet blocks eventually let the
// limiter go idle again.
func (s *SoftLimiter) Process(acc []float32, out []int16, peak *voice.PeakAmplitude) (limited bool) {
	if peak.Left < limiterThreshold && peak.Right < limiterThreshold {
		for i, v := range acc {
			out[i] = int16(v)
		}
		return false
	}

	ratioLeft := float32(1.0)
	if r := limiterThreshold / peak.Left; r < ratioLeft {
		ratioLeft = r
	}
	ratioRight := float32(1.0)
	if r := limiterThreshold / peak.Right; r < ratioRight {
		ratioRight = r
	}

	frames := len(acc) / 2
	for i := 0; i < frames; i++ {
		out[2*i] = int16(acc[2*i] * ratioLeft)
		out[2*i+1] = int16(acc[2*i+1] * ratioRight)
	}

	release := limiterThreshold * float32(voice.VolumeStep-1.0)
	if peak.Left > limiterThreshold {
		peak.Left -= release
	}
	if peak.Right > limiterThreshold {
		peak.Right -= release
	}
	return true
}
