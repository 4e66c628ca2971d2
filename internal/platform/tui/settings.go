package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/persist"
	"github.com/vovakirdan/tui-snake/internal/theme"
)

// SettingRow identifies one editable line of the settings screen.
type SettingRow int

const (
	RowDifficulty SettingRow = iota
	RowMapMode
	RowObstacles
	RowSound
	RowTheme
	RowColorblind
	RowUIScale
	RowParticles
	RowScreenShake
	RowReducedMotion
	SettingRowCount
)

// uiScales are the selectable board scales.
var uiScales = []float64{0.5, 1.0, 1.5, 2.0}

func (r SettingRow) Label() string {
	switch r {
	case RowDifficulty:
		return "Difficulty"
	case RowMapMode:
		return "Map"
	case RowObstacles:
		return "Obstacles"
	case RowSound:
		return "Sound"
	case RowTheme:
		return "Theme"
	case RowColorblind:
		return "Colorblind"
	case RowUIScale:
		return "UI scale"
	case RowParticles:
		return "Particles"
	case RowScreenShake:
		return "Screen shake"
	case RowReducedMotion:
		return "Reduced motion"
	}
	return "?"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// SettingValue formats the current value of a row.
func SettingValue(d *persist.PersistentData, r SettingRow) string {
	s, g := d.Settings, d.Graphics
	switch r {
	case RowDifficulty:
		return s.Difficulty.String()
	case RowMapMode:
		return s.MapMode.String()
	case RowObstacles:
		return onOff(s.ObstaclesEnabled)
	case RowSound:
		return onOff(!s.Muted)
	case RowTheme:
		return g.ThemeID
	case RowColorblind:
		return g.ColorblindMode
	case RowUIScale:
		return fmt.Sprintf("%.1fx", g.UIScale)
	case RowParticles:
		return onOff(g.Particles)
	case RowScreenShake:
		return onOff(g.ScreenShake)
	case RowReducedMotion:
		return onOff(g.ReducedMotion)
	}
	return ""
}

// CycleSetting moves a row to its next (step > 0) or previous value,
// wrapping around. Booleans flip either way.
func CycleSetting(d *persist.PersistentData, r SettingRow, step int) {
	s, g := &d.Settings, &d.Graphics
	switch r {
	case RowDifficulty:
		s.Difficulty = game.Difficulties[cycleIndex(indexOf(game.Difficulties, s.Difficulty), step, len(game.Difficulties))]
	case RowMapMode:
		s.MapMode = game.MapModes[cycleIndex(indexOf(game.MapModes, s.MapMode), step, len(game.MapModes))]
	case RowObstacles:
		s.ObstaclesEnabled = !s.ObstaclesEnabled
	case RowSound:
		s.Muted = !s.Muted
	case RowTheme:
		g.ThemeID = string(theme.IDs[cycleIndex(indexOf(theme.IDs, theme.ID(g.ThemeID)), step, len(theme.IDs))])
	case RowColorblind:
		g.ColorblindMode = string(theme.Modes[cycleIndex(indexOf(theme.Modes, theme.Mode(g.ColorblindMode)), step, len(theme.Modes))])
	case RowUIScale:
		i := 1
		for j, v := range uiScales {
			if v == g.UIScale {
				i = j
			}
		}
		g.UIScale = uiScales[cycleIndex(i, step, len(uiScales))]
	case RowParticles:
		g.Particles = !g.Particles
	case RowScreenShake:
		g.ScreenShake = !g.ScreenShake
	case RowReducedMotion:
		g.ReducedMotion = !g.ReducedMotion
	}
}

// indexOf returns the position of v, or -1 so that stepping forward lands
// on the first value.
func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}

func cycleIndex(i, step, n int) int {
	if step < 0 {
		return core.Mod(i-1, n)
	}
	return core.Mod(i+1, n)
}

// SettingsModel edits the save record in place.
type SettingsModel struct {
	data       *persist.PersistentData
	cursor     int
	width      int
	height     int
	keyMapper  *KeyMapper
	changed    bool
	done       bool
	quitting   bool
	standalone bool
}

// NewSettingsModel creates a settings screen for data.
func NewSettingsModel(data *persist.PersistentData, cfg core.RuntimeConfig) SettingsModel {
	return SettingsModel{
		data:      data,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.done = true
		if m.standalone {
			return m, tea.Quit
		}
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < int(SettingRowCount)-1 {
			m.cursor++
		}
	case MenuActionLeft:
		CycleSetting(m.data, SettingRow(m.cursor), -1)
		m.changed = true
	case MenuActionRight, MenuActionSelect:
		CycleSetting(m.data, SettingRow(m.cursor), 1)
		m.changed = true
	}
	return m, nil
}

// View renders the settings list.
func (m SettingsModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("S E T T I N G S", m.width))
	b.WriteString("\n\n")

	for r := range SettingRowCount {
		cursor := "  "
		if int(r) == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-16s < %-14s >", cursor, r.Label(), SettingValue(m.data, r))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Left/Right: Change  |  Esc: Save & back  |  Q: Quit", m.width))
	return b.String()
}

// Changed reports whether any value was edited.
func (m SettingsModel) Changed() bool { return m.changed }

// Done reports whether the user left the screen with Esc.
func (m SettingsModel) Done() bool { return m.done }

// IsQuitting returns true if user wants to quit.
func (m SettingsModel) IsQuitting() bool { return m.quitting }

// RunSettings edits data interactively and saves it through file when
// anything changed.
func RunSettings(data *persist.PersistentData, file *persist.File, cfg core.RuntimeConfig) (quit bool, err error) {
	model := NewSettingsModel(data, cfg)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return true, err
	}
	m, ok := finalModel.(SettingsModel)
	if !ok {
		return true, nil
	}
	if m.Changed() && file != nil {
		if err := file.Save(data); err != nil {
			return m.IsQuitting(), fmt.Errorf("tui: save settings: %w", err)
		}
	}
	return m.IsQuitting(), nil
}
