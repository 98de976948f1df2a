package mixer

import (
	"testing"
)

func TestRingMixerBuffersAndDrains(t *testing.T) {
	m := NewRingMixer()
	m.AddSamples([]int16{1, 2, 3, 4})
	m.AddSamples([]int16{5, 6})

	m.SetFrequency(44100)
	if got := m.Frequency(); got != 44100 {
		t.Fatalf("Frequency() = %d, want 44100", got)
	}

	m.Enable(true)
	if !m.Enabled() {
		t.Fatal("Enabled() = false, want true after Enable(true)")
	}

	got := m.Drain()
	want := []int16{1, 2, 3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("Drain() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Drain()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if rest := m.Drain(); len(rest) != 0 {
		t.Fatalf("second Drain() = %v, want empty (buffer should have been emptied)", rest)
	}
}
