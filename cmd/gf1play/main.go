// gf1play is a small flag-based CLI that loads a GF1 instrument patch,
// points one voice at its first wave, and plays it through a chosen
// mixer backend.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/arnebg/gf1"
	"github.com/arnebg/gf1/mixer"
	"github.com/arnebg/gf1/patch"
)

type settings struct {
	patPath  string
	backend  string
	rate     int
	instr    int
	duration time.Duration
}

func parseArgs() *settings {
	s := &settings{}
	flag.StringVar(&s.backend, "backend", "oto", "output backend: ring, oto, sdl, blip")
	flag.IntVar(&s.rate, "rate", 44100, "output sample rate in Hz")
	flag.IntVar(&s.instr, "instrument", 0, "index of the instrument to play")
	flag.DurationVar(&s.duration, "duration", 3*time.Second, "how long to play")
	flag.Parse()

	if len(flag.Args()) == 0 {
		fmt.Println("Usage: gf1play [options] <patchfile.pat>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	s.patPath = flag.Arg(0)
	return s
}

// noopPIC logs instead of raising a real interrupt line: this CLI has
// no host to deliver one to.
type noopPIC struct{}

func (noopPIC) ActivateIRQ(irq int) {
	log.Printf("gf1play: IRQ %d", irq)
}

func newMixer(s *settings) (gf1.Mixer, func(), error) {
	switch s.backend {
	case "ring":
		return mixer.NewRingMixer(), func() {}, nil
	case "oto":
		m, err := mixer.NewOtoMixer(s.rate)
		if err != nil {
			return nil, nil, err
		}
		return m, func() { m.Close() }, nil
	case "sdl":
		m, err := mixer.NewSDLMixer(s.rate)
		if err != nil {
			return nil, nil, err
		}
		return m, func() { m.Close() }, nil
	case "blip":
		m := mixer.NewBlipMixer(s.rate)
		return m, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("gf1play: unknown backend %q", s.backend)
	}
}

func main() {
	s := parseArgs()

	bank, err := patch.NewBank(afero.NewOsFs(), 8)
	if err != nil {
		log.Fatal(err)
	}
	instruments, err := bank.Load(s.patPath)
	if err != nil {
		log.Fatal(err)
	}
	if s.instr < 0 || s.instr >= len(instruments) {
		log.Fatalf("gf1play: instrument index %d out of range (have %d)", s.instr, len(instruments))
	}
	instrument := instruments[s.instr]
	if len(instrument.Waves) == 0 {
		log.Fatalf("gf1play: instrument %q has no waves", instrument.Name)
	}
	log.Printf("gf1play: playing %s", instrument)

	out, closeMixer, err := newMixer(s)
	if err != nil {
		log.Fatal(err)
	}
	defer closeMixer()

	engine := gf1.NewEngine(out, noopPIC{}, nil)
	voice := engine.Voice(0)
	patch.Upload(engine.SampleMemory(), voice, 0, instrument.Waves[0])
	voice.SetEndVol(0xfff0)
	voice.SetCurVol(0xfff0)
	voice.WriteRampRate(0x20)
	voice.WriteWaveCtrl(0)
	voice.WriteRampCtrl(0)

	const framesPerBlock = 64
	blockDuration := time.Duration(framesPerBlock) * time.Second / time.Duration(s.rate)
	deadline := time.Now().Add(s.duration)
	for time.Now().Before(deadline) {
		engine.Mix(framesPerBlock)
		time.Sleep(blockDuration)
	}

	if r, ok := out.(*mixer.RingMixer); ok {
		log.Printf("gf1play: rendered %d frames", len(r.Drain())/2)
	}
}
