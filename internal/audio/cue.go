// Package audio plays short synthesised cues for game events.
package audio

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/events"
)

// Cue names a sound the game can request.
type Cue string

const (
	CueMove    Cue = "move"
	CueEat     Cue = "eat"
	CueConfirm Cue = "confirm"
	CueDeath   Cue = "death"
)

// Tone is a single sine beep.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Volume   float64 // linear gain in [0,1]
}

// Tones maps each cue to its beep.
var Tones = map[Cue]Tone{
	CueMove:    {Freq: 440, Duration: 40 * time.Millisecond, Volume: 0.15},
	CueEat:     {Freq: 700, Duration: 80 * time.Millisecond, Volume: 0.25},
	CueConfirm: {Freq: 560, Duration: 90 * time.Millisecond, Volume: 0.22},
	CueDeath:   {Freq: 180, Duration: 220 * time.Millisecond, Volume: 0.30},
}

// Player plays cues. Implementations never fail; a player that cannot
// produce sound stays quiet.
type Player interface {
	Play(c Cue)
	SetMuted(muted bool)
	Muted() bool
	Close()
}

// Silent is a Player that never makes a sound.
type Silent struct {
	muted bool
}

func (s *Silent) Play(Cue)            {}
func (s *Silent) SetMuted(muted bool) { s.muted = muted }
func (s *Silent) Muted() bool         { return s.muted }
func (s *Silent) Close()              {}

// CueHandler routes bus events to cues.
type CueHandler struct {
	Player Player
}

// NewCueHandler returns a router handler that plays cues on p.
func NewCueHandler(p Player) *CueHandler {
	return &CueHandler{Player: p}
}

// EventTypes implements events.Handler. PlayerDied is absent: a death may
// still be absorbed, so the session plays that cue once the run really ends.
func (h *CueHandler) EventTypes() []events.Type {
	return []events.Type{events.FoodEaten, events.StageAdvanced, events.PowerupCollected}
}

// HandleEvent implements events.Handler.
func (h *CueHandler) HandleEvent(e events.Event) {
	if h.Player == nil {
		return
	}
	switch e.Type {
	case events.FoodEaten:
		h.Player.Play(CueEat)
	case events.StageAdvanced, events.PowerupCollected:
		h.Player.Play(CueConfirm)
	}
}
