// Package tui provides the Bubble Tea front end: the game screen, menus,
// the scoreboard and the SSH server that hosts them remotely.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent once per rendered frame.
type FrameMsg time.Time

// maxFrameDelta caps the wall time fed to the session after a stall
// (suspended terminal, slow SSH link).
const maxFrameDelta = 0.25

// frameCmd returns a Bubble Tea command that sends frame messages at fps.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// frameDelta returns the seconds between two frames, clamped to
// [0, maxFrameDelta]. A zero previous time yields 0.
func frameDelta(prev, now time.Time) float64 {
	if prev.IsZero() {
		return 0
	}
	d := now.Sub(prev).Seconds()
	return min(max(d, 0), maxFrameDelta)
}
