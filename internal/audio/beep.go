package audio

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(22050)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// initSpeaker opens the output device once per process.
func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(time.Second/10))
	})
	return speakerErr
}

// BeepPlayer plays cues through the system speaker.
type BeepPlayer struct {
	mu     sync.Mutex
	muted  bool
	closed bool
	cache  map[Cue]*beep.Buffer
}

// New opens the speaker and returns a player for it. When no audio device
// is available it logs a warning and returns a Silent player instead.
func New(muted bool, logger *log.Logger) Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := initSpeaker(); err != nil {
		logger.Warn("audio unavailable, continuing without sound", "err", err)
		return &Silent{muted: muted}
	}
	p := &BeepPlayer{muted: muted, cache: make(map[Cue]*beep.Buffer, len(Tones))}
	for c, t := range Tones {
		buf, err := Render(t)
		if err != nil {
			logger.Warn("audio cue skipped", "cue", string(c), "err", err)
			continue
		}
		p.cache[c] = buf
	}
	return p
}

// Play starts the cue without waiting for it to finish.
func (p *BeepPlayer) Play(c Cue) {
	p.mu.Lock()
	buf, ok := p.cache[c]
	skip := p.muted || p.closed || !ok
	p.mu.Unlock()
	if skip {
		return
	}
	speaker.Play(buf.Streamer(0, buf.Len()))
}

func (p *BeepPlayer) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

func (p *BeepPlayer) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Close stops anything still playing. The device itself stays open.
func (p *BeepPlayer) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	speaker.Clear()
}

// Render synthesises a tone into a buffer at SampleRate.
func Render(t Tone) (*beep.Buffer, error) {
	s, err := ToneStreamer(t)
	if err != nil {
		return nil, err
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	return buf, nil
}

// ToneStreamer returns a finite sine streamer for t.
func ToneStreamer(t Tone) (beep.Streamer, error) {
	if t.Duration <= 0 {
		return nil, fmt.Errorf("audio: tone duration must be positive, got %s", t.Duration)
	}
	sine, err := generators.SineTone(SampleRate, t.Freq)
	if err != nil {
		return nil, fmt.Errorf("audio: sine %.0fHz: %w", t.Freq, err)
	}
	return withVolume(beep.Take(SampleRate.N(t.Duration), sine), t.Volume), nil
}

// math.Log2(0) is -Inf, so zero volume maps to Silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
