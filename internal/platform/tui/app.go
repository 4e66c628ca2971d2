package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/core"
)

type view int

const (
	viewMenu view = iota
	viewGame
	viewScores
	viewSettings
)

// AppModel manages the full flow: menu -> game, scores or settings -> menu.
// It is the top-level model for local play and for SSH sessions.
type AppModel struct {
	deps     Deps
	config   core.RuntimeConfig
	view     view
	menu     MenuModel
	game     GameModel
	scores   ScoreboardModel
	settings SettingsModel
	quitting bool
}

// NewAppModel creates the app on its main menu.
func NewAppModel(deps Deps, cfg core.RuntimeConfig) AppModel {
	return AppModel{
		deps:   deps,
		config: cfg,
		menu:   NewMenuModel(deps.Data, cfg),
	}
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if km, ok := msg.(tea.KeyMsg); ok && (m.view == viewMenu || m.view == viewSettings) {
		m.playMenuCue(km)
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	case viewSettings:
		return m.updateSettings(msg)
	}
	return m.updateMenu(msg)
}

// playMenuCue ticks on cursor moves and chimes on selection.
func (m AppModel) playMenuCue(msg tea.KeyMsg) {
	if m.deps.Player == nil {
		return
	}
	var km KeyMapper
	switch km.MapKeyToMenuAction(msg) {
	case MenuActionUp, MenuActionDown, MenuActionLeft, MenuActionRight:
		m.deps.Player.Play(audio.CueMove)
	case MenuActionSelect:
		m.deps.Player.Play(audio.CueConfirm)
	}
}

func (m AppModel) toMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.deps.Data, m.config)
	return m, m.menu.Init()
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch m.menu.Chosen() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	case ChoicePlay:
		m.view = viewGame
		m.game = NewGameModel(m.deps, m.config)
		return m, m.game.Init()
	case ChoiceScores:
		m.view = viewScores
		m.scores = NewScoreboardModel(m.deps.Store, m.deps.Data, m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()
	case ChoiceSettings:
		m.view = viewSettings
		m.settings = NewSettingsModel(m.deps.Data, m.config)
		return m, m.settings.Init()
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = gm
	}
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		// The pending frame message lands on the menu and is ignored there.
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}
	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.settings.Update(msg)
	if sm, ok := next.(SettingsModel); ok {
		m.settings = sm
	}
	if !m.settings.Done() && !m.settings.IsQuitting() {
		return m, cmd
	}

	if m.settings.Changed() {
		if m.deps.Player != nil {
			m.deps.Player.SetMuted(m.deps.Data.Settings.Muted)
		}
		if m.deps.File != nil {
			if err := m.deps.File.Save(m.deps.Data); err != nil && m.deps.Logger != nil {
				m.deps.Logger.Error("cannot save settings", "err", err)
			}
		}
	}
	if m.settings.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m.toMenu()
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewGame:
		return m.game.View()
	case viewScores:
		return m.scores.View()
	case viewSettings:
		return m.settings.View()
	}
	return m.menu.View()
}

// RunApp runs the menu-driven app until the user quits.
func RunApp(deps Deps, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(NewAppModel(deps, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
