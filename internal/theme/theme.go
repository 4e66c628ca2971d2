// Package theme maps semantic board colors to terminal styles for each
// visual theme, with optional colorblind-friendly remaps.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ID names a theme.
type ID string

const (
	Neon   ID = "neon"
	Sunset ID = "sunset"
	Ocean  ID = "ocean"
)

// IDs lists every theme in cycling order.
var IDs = []ID{Neon, Sunset, Ocean}

// Mode names a colorblind remap.
type Mode string

const (
	ModeOff          Mode = "off"
	ModeDeuteranopia Mode = "deuteranopia"
	ModeTritanopia   Mode = "tritanopia"
	ModeHighContrast Mode = "high_contrast"
)

// Modes lists every colorblind mode in cycling order.
var Modes = []Mode{ModeOff, ModeDeuteranopia, ModeTritanopia, ModeHighContrast}

// Palette holds one color per board role.
type Palette struct {
	Background lipgloss.Color
	Grid       lipgloss.Color
	SnakeHead  lipgloss.Color
	SnakeBody  lipgloss.Color
	Obstacle   lipgloss.Color
	Food       lipgloss.Color
	PowerUp    lipgloss.Color
	Text       lipgloss.Color
	Accent     lipgloss.Color
	Selected   lipgloss.Color
}

// Theme is a resolved palette with its derived styles.
type Theme struct {
	ID      ID
	Mode    Mode
	Palette Palette
	styles  map[core.Color]lipgloss.Style
}

var palettes = map[ID]Palette{
	Neon: {
		Background: "#101216",
		Grid:       "#1E222A",
		SnakeHead:  "#6ADB82",
		SnakeBody:  "#37B35C",
		Obstacle:   "#717B8F",
		Food:       "#E95851",
		PowerUp:    "#F7C655",
		Text:       "#ECEFF4",
		Accent:     "#5DC6F0",
		Selected:   "#FFD756",
	},
	Sunset: {
		Background: "#1E1418",
		Grid:       "#482B38",
		SnakeHead:  "#FFB256",
		SnakeBody:  "#F58756",
		Obstacle:   "#7D5A70",
		Food:       "#EF476F",
		PowerUp:    "#FFD166",
		Text:       "#F7F4F0",
		Accent:     "#FF9F1C",
		Selected:   "#FFE66D",
	},
	Ocean: {
		Background: "#0C1B24",
		Grid:       "#1D4354",
		SnakeHead:  "#7CDDC4",
		SnakeBody:  "#38A7A9",
		Obstacle:   "#5E7D8F",
		Food:       "#FF6B6B",
		PowerUp:    "#FFDD59",
		Text:       "#E7F5FF",
		Accent:     "#6FFFE9",
		Selected:   "#FFECB3",
	},
}

// Known reports whether id names a built-in theme.
func Known(id string) bool {
	_, ok := palettes[ID(id)]
	return ok
}

// KnownMode reports whether mode names a colorblind remap.
func KnownMode(mode string) bool {
	for _, m := range Modes {
		if string(m) == mode {
			return true
		}
	}
	return false
}

// Resolve returns the theme for id with the colorblind mode applied.
// Unknown ids fall back to Neon; unknown modes leave the palette unchanged.
func Resolve(id, mode string) Theme {
	tid := ID(id)
	p, ok := palettes[tid]
	if !ok {
		tid = Neon
		p = palettes[Neon]
	}

	m := Mode(strings.ToLower(strings.TrimSpace(mode)))
	p = remap(p, m)
	if !KnownMode(string(m)) || m == "" {
		m = ModeOff
	}

	t := Theme{ID: tid, Mode: m, Palette: p}
	t.styles = buildStyles(p)
	return t
}

func remap(p Palette, m Mode) Palette {
	switch m {
	case ModeDeuteranopia:
		p.SnakeHead = "#72B8FF"
		p.SnakeBody = "#569AE8"
		p.Food = "#FFAD52"
	case ModeTritanopia:
		p.Grid = "#484848"
		p.SnakeHead = "#70DC8E"
		p.SnakeBody = "#48B670"
		p.Obstacle = "#888888"
		p.Food = "#FF7070"
		p.PowerUp = "#FFD05C"
		p.Accent = "#FFB84C"
	case ModeHighContrast:
		p = Palette{
			Background: "#0A0A0A",
			Grid:       "#3C3C3C",
			SnakeHead:  "#00FF80",
			SnakeBody:  "#00D26E",
			Obstacle:   "#AAAAAA",
			Food:       "#FF5050",
			PowerUp:    "#FFDC32",
			Text:       "#FFFFFF",
			Accent:     "#50DCFF",
			Selected:   "#FFF578",
		}
	}
	return p
}

func buildStyles(p Palette) map[core.Color]lipgloss.Style {
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	return map[core.Color]lipgloss.Style{
		core.ColorDefault:   lipgloss.NewStyle(),
		core.ColorGrid:      fg(p.Grid),
		core.ColorSnakeHead: fg(p.SnakeHead).Bold(true),
		core.ColorSnakeBody: fg(p.SnakeBody),
		core.ColorObstacle:  fg(p.Obstacle),
		core.ColorFood:      fg(p.Food).Bold(true),
		core.ColorPowerUp:   fg(p.PowerUp).Bold(true),
		core.ColorText:      fg(p.Text),
		core.ColorAccent:    fg(p.Accent).Bold(true),
		core.ColorSelected:  fg(p.Selected).Bold(true),
	}
}

// Style returns the style for a board role.
func (t Theme) Style(c core.Color) lipgloss.Style {
	if s, ok := t.styles[c]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Next returns the theme id after id in cycling order.
func Next(id string) ID {
	for i, t := range IDs {
		if string(t) == id {
			return IDs[(i+1)%len(IDs)]
		}
	}
	return Neon
}
